package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
)

var now = time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)

func days(n int) time.Time {
	return now.AddDate(0, 0, n)
}

func newDeparture(id string, arrivalInDays int, min, max int) *domain.Departure {
	arrival := days(arrivalInDays)
	return &domain.Departure{
		ID:              id,
		RouteID:         "route-1",
		ArrivalDate:     arrival,
		StartDate:       arrival.AddDate(0, 0, 1),
		EndDate:         arrival.AddDate(0, 0, 8),
		MinParticipants: min,
		MaxParticipants: max,
		Status:          domain.DepartureOpen,
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(d *domain.Departure)
		occupied   int
		wantStatus domain.DepartureStatus
	}{
		{
			name:       "empty departure is open",
			occupied:   0,
			wantStatus: domain.DepartureOpen,
		},
		{
			name:       "four remaining spots is still open",
			occupied:   6,
			wantStatus: domain.DepartureOpen,
		},
		{
			name:       "three remaining spots is limited",
			occupied:   7,
			wantStatus: domain.DepartureLimited,
		},
		{
			name:       "one remaining spot is limited",
			occupied:   9,
			wantStatus: domain.DepartureLimited,
		},
		{
			name:       "no remaining spots is full",
			occupied:   10,
			wantStatus: domain.DepartureFull,
		},
		{
			name:       "overbooked departure is full",
			occupied:   12,
			wantStatus: domain.DepartureFull,
		},
		{
			name:       "guaranteed departure reaching minimum",
			modify:     func(d *domain.Departure) { d.IsGuaranteed = true },
			occupied:   4,
			wantStatus: domain.DepartureGuaranteed,
		},
		{
			name:       "guaranteed departure below minimum falls through to open",
			modify:     func(d *domain.Departure) { d.IsGuaranteed = true },
			occupied:   3,
			wantStatus: domain.DepartureOpen,
		},
		{
			name:       "guaranteed wins over limited",
			modify:     func(d *domain.Departure) { d.IsGuaranteed = true },
			occupied:   8,
			wantStatus: domain.DepartureGuaranteed,
		},
		{
			name:       "full wins over guaranteed",
			modify:     func(d *domain.Departure) { d.IsGuaranteed = true },
			occupied:   10,
			wantStatus: domain.DepartureFull,
		},
		{
			name: "minimum reached without guarantee flag stays capacity driven",
			modify: func(d *domain.Departure) {
				d.IsGuaranteed = false
			},
			occupied:   5,
			wantStatus: domain.DepartureOpen,
		},
		{
			name: "past end date completes regardless of occupancy",
			modify: func(d *domain.Departure) {
				d.ArrivalDate = days(-10)
				d.StartDate = days(-9)
				d.EndDate = days(-1)
				d.Status = domain.DepartureFull
			},
			occupied:   10,
			wantStatus: domain.DepartureCompleted,
		},
		{
			name: "departure in progress is not completed yet",
			modify: func(d *domain.Departure) {
				d.ArrivalDate = days(-3)
				d.StartDate = days(-2)
				d.EndDate = days(2)
			},
			occupied:   2,
			wantStatus: domain.DepartureOpen,
		},
		{
			name: "completed departure is never resurrected",
			modify: func(d *domain.Departure) {
				d.Status = domain.DepartureCompleted
			},
			occupied:   0,
			wantStatus: domain.DepartureCompleted,
		},
		{
			name: "cancelled departure stays cancelled",
			modify: func(d *domain.Departure) {
				d.Status = domain.DepartureCancelled
				d.EndDate = days(-5)
			},
			occupied:   3,
			wantStatus: domain.DepartureCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeparture("dep", 30, 4, 10)
			if tt.modify != nil {
				tt.modify(d)
			}
			assert.Equal(t, tt.wantStatus, NextStatus(d, tt.occupied, now))
		})
	}
}

func TestNextStatus_TerminalStability(t *testing.T) {
	d := newDeparture("dep", 30, 4, 10)
	d.Status = domain.DepartureCompleted

	for _, when := range []time.Time{days(-100), now, days(100)} {
		for occupied := 0; occupied <= 15; occupied++ {
			assert.Equal(t, domain.DepartureCompleted, NextStatus(d, occupied, when))
		}
	}
}

func TestNextStatus_CapacityMonotonicity(t *testing.T) {
	for _, guaranteed := range []bool{false, true} {
		for min := 1; min <= 10; min++ {
			d := newDeparture("dep", 30, min, 10)
			d.IsGuaranteed = guaranteed

			prev := NextStatus(d, 0, now)
			for occupied := 1; occupied <= 12; occupied++ {
				next := NextStatus(d, occupied, now)
				assert.GreaterOrEqual(t, next.Rank(), prev.Rank(),
					"guaranteed=%v min=%d occupied=%d: %s -> %s", guaranteed, min, occupied, prev, next)
				prev = next
			}
		}
	}
}

func TestNextStatus_NeverCancels(t *testing.T) {
	d := newDeparture("dep", -20, 1, 2)
	d.EndDate = days(-12)

	for occupied := 0; occupied <= 3; occupied++ {
		assert.NotEqual(t, domain.DepartureCancelled, NextStatus(d, occupied, now))
	}
}
