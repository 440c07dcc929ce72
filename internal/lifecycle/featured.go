package lifecycle

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
)

// EligibleCandidates filters departures of one route down to those automatic
// rotation may feature: not terminal, not opted out, and arriving no sooner
// than cfg.SkipWithinDays from now.
func EligibleCandidates(departures []*domain.Departure, cfg *domain.RotationConfig, now time.Time) []*domain.Departure {
	window := cfg.SkipWindow()
	eligible := make([]*domain.Departure, 0, len(departures))

	for _, d := range departures {
		if d.Status.IsTerminal() || d.ExcludeFromRotation {
			continue
		}
		if d.ArrivalDate.Sub(now) < window {
			continue
		}
		eligible = append(eligible, d)
	}

	return eligible
}

// RankCandidates returns the featured queue of one route in selection order.
// An operator pin (if any) comes first, followed by the eligible candidates
// sorted soonest-first, full-moon departures ahead when cfg.PrioritizeFullMoon.
func RankCandidates(departures []*domain.Departure, cfg *domain.RotationConfig, now time.Time) []*domain.Departure {
	eligible := EligibleCandidates(departures, cfg, now)
	sortCandidates(eligible, cfg.PrioritizeFullMoon)

	pin := findPin(departures, cfg.PrioritizeFullMoon)
	if pin == nil {
		return eligible
	}

	queue := make([]*domain.Departure, 0, len(eligible)+1)
	queue = append(queue, pin)
	for _, d := range eligible {
		if d.ID != pin.ID {
			queue = append(queue, d)
		}
	}
	return queue
}

// SelectFeatured picks the departure to feature for one route, or nil.
// A non-terminal pin wins unconditionally: it bypasses the skip window and
// ExcludeFromRotation, which only filter automatic candidates. Without a pin,
// MANUAL_ONLY selects nothing.
func SelectFeatured(departures []*domain.Departure, cfg *domain.RotationConfig, now time.Time) *domain.Departure {
	if pin := findPin(departures, cfg.PrioritizeFullMoon); pin != nil {
		return pin
	}

	if cfg.Mode == domain.RotationManualOnly {
		return nil
	}

	ranked := RankCandidates(departures, cfg, now)
	if len(ranked) == 0 {
		return nil
	}
	return ranked[0]
}

// findPin returns the pinned non-terminal departure. Only one pin per route is
// expected; if several exist the best-ranked one wins.
func findPin(departures []*domain.Departure, prioritizeFullMoon bool) *domain.Departure {
	pins := make([]*domain.Departure, 0, 1)
	for _, d := range departures {
		if d.IsManuallyFeatured && !d.Status.IsTerminal() {
			pins = append(pins, d)
		}
	}
	if len(pins) == 0 {
		return nil
	}
	sortCandidates(pins, prioritizeFullMoon)
	return pins[0]
}

func sortCandidates(departures []*domain.Departure, prioritizeFullMoon bool) {
	sort.SliceStable(departures, func(i, j int) bool {
		a, b := departures[i], departures[j]

		if prioritizeFullMoon && a.IsFullMoon != b.IsFullMoon {
			return a.IsFullMoon
		}
		if !a.ArrivalDate.Equal(b.ArrivalDate) {
			return a.ArrivalDate.Before(b.ArrivalDate)
		}
		return a.ID < b.ID
	})
}
