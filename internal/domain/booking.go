package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingInquiry     BookingStatus = "INQUIRY"
	BookingPending     BookingStatus = "PENDING"
	BookingDepositPaid BookingStatus = "DEPOSIT_PAID"
	BookingConfirmed   BookingStatus = "CONFIRMED"
	BookingCancelled   BookingStatus = "CANCELLED"
	BookingRefunded    BookingStatus = "REFUNDED"
	BookingNoShow      BookingStatus = "NO_SHOW"
	BookingCompleted   BookingStatus = "COMPLETED"
)

// Booking is a reservation against one departure.
// Owned by the booking system; this service only reads it.
type Booking struct {
	ID            string
	DepartureID   string
	LeadName      string
	LeadEmail     string
	LeadPhone     *string
	TotalClimbers int
	Status        BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCapacity returns true if the booking counts toward occupied spots
func (b *Booking) OccupiesCapacity() bool {
	return b.Status.OccupiesCapacity()
}

// OccupiesCapacity returns true for DEPOSIT_PAID, CONFIRMED and COMPLETED
func (s BookingStatus) OccupiesCapacity() bool {
	for _, c := range CapacityStatuses {
		if s == c {
			return true
		}
	}
	return false
}

// OccupiedSpots sums travelers across bookings that count toward capacity
func OccupiedSpots(bookings []*Booking) int {
	total := 0
	for _, b := range bookings {
		if b.OccupiesCapacity() {
			total += b.TotalClimbers
		}
	}
	return total
}
