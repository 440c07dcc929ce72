package domain

// Default rotation policy values
const (
	DefaultRotationEnabled    = true
	DefaultRotationMode       = RotationNextUpcoming
	DefaultSkipWithinDays     = 7
	DefaultPrioritizeFullMoon = true
)

// RotationConfigID primary key of the singleton rotation_config row
const RotationConfigID = 1

// LimitedSpotsThreshold departures with 1..N remaining spots are LIMITED
const LimitedSpotsThreshold = 3

// Business validation constants
const (
	MinSkipWithinDays    = 0
	MaxSkipWithinDays    = 365
	MaxNotesLength       = 2000
	MaxCancelReasonLen   = 500
	MaxParticipantsLimit = 200
)

// DateFormat YYYY-MM-DD
const DateFormat = "2006-01-02"

// CapacityStatuses booking statuses counted toward occupied spots.
// INQUIRY, PENDING, CANCELLED, REFUNDED and NO_SHOW never occupy capacity.
var CapacityStatuses = []BookingStatus{
	BookingDepositPaid,
	BookingConfirmed,
	BookingCompleted,
}

// TerminalDepartureStatuses statuses excluded from rotation
var TerminalDepartureStatuses = []DepartureStatus{
	DepartureCompleted,
	DepartureCancelled,
}
