package lifecycle

import (
	"time"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
)

// NextStatus computes the status a departure should have for the given occupancy at now.
//
// Precedence (first match wins):
//  1. now after EndDate           -> COMPLETED
//  2. occupied >= max             -> FULL
//  3. guaranteed, occupied >= min -> GUARANTEED
//  4. 0 < remaining <= 3          -> LIMITED
//  5. otherwise                   -> OPEN
//
// Terminal statuses are returned unchanged. CANCELLED is never produced.
func NextStatus(d *domain.Departure, occupied int, now time.Time) domain.DepartureStatus {
	if d.Status.IsTerminal() {
		return d.Status
	}

	if now.After(d.EndDate) {
		return domain.DepartureCompleted
	}

	if occupied >= d.MaxParticipants {
		return domain.DepartureFull
	}

	if d.IsGuaranteed && occupied >= d.MinParticipants {
		return domain.DepartureGuaranteed
	}

	remaining := d.MaxParticipants - occupied
	if remaining > 0 && remaining <= domain.LimitedSpotsThreshold {
		return domain.DepartureLimited
	}

	return domain.DepartureOpen
}
