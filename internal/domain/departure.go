package domain

import (
	"errors"
	"time"
)

// DepartureStatus lifecycle status of a scheduled departure
type DepartureStatus string

const (
	DepartureOpen       DepartureStatus = "OPEN"
	DepartureLimited    DepartureStatus = "LIMITED"
	DepartureGuaranteed DepartureStatus = "GUARANTEED"
	DepartureFull       DepartureStatus = "FULL"
	DepartureCompleted  DepartureStatus = "COMPLETED"
	DepartureCancelled  DepartureStatus = "CANCELLED"
)

// ErrInvalidDateOrder is returned by Departure.ValidateDates
var ErrInvalidDateOrder = errors.New("departure dates must satisfy arrival <= start <= summit <= end")

// IsValid reports whether s is one of the known statuses
func (s DepartureStatus) IsValid() bool {
	switch s {
	case DepartureOpen, DepartureLimited, DepartureGuaranteed, DepartureFull,
		DepartureCompleted, DepartureCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses the rotation engine never leaves
func (s DepartureStatus) IsTerminal() bool {
	return s == DepartureCompleted || s == DepartureCancelled
}

// Rank orders the capacity-driven statuses OPEN < LIMITED < GUARANTEED < FULL.
// Terminal statuses rank above all of them.
func (s DepartureStatus) Rank() int {
	switch s {
	case DepartureOpen:
		return 0
	case DepartureLimited:
		return 1
	case DepartureGuaranteed:
		return 2
	case DepartureFull:
		return 3
	default:
		return 4
	}
}

// Departure is one scheduled instance of a route
type Departure struct {
	ID      string
	RouteID string

	ArrivalDate time.Time
	StartDate   time.Time
	SummitDate  *time.Time // optional midpoint (summit night for treks)
	EndDate     time.Time
	Year        int
	Month       int

	Price    float64
	Currency string

	MinParticipants int
	MaxParticipants int

	IsFullMoon          bool
	IsGuaranteed        bool
	IsFeatured          bool
	IsManuallyFeatured  bool
	ExcludeFromRotation bool

	Status DepartureStatus

	InternalNotes *string
	PublicNotes   *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDates checks arrival <= start <= summit <= end (summit is optional)
func (d *Departure) ValidateDates() error {
	if d.StartDate.Before(d.ArrivalDate) {
		return ErrInvalidDateOrder
	}
	if d.SummitDate != nil {
		if d.SummitDate.Before(d.StartDate) || d.EndDate.Before(*d.SummitDate) {
			return ErrInvalidDateOrder
		}
	}
	if d.EndDate.Before(d.StartDate) {
		return ErrInvalidDateOrder
	}
	return nil
}

// RemainingSpots returns free capacity for the given occupancy, never negative
func (d *Departure) RemainingSpots(occupied int) int {
	remaining := d.MaxParticipants - occupied
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanBeCancelled returns true while the departure is not in a terminal status
func (d *Departure) CanBeCancelled() bool {
	return !d.Status.IsTerminal()
}
