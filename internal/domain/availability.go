package domain

// Availability capacity view of a departure
type Availability struct {
	OccupiedSpots  int
	RemainingSpots int
	TotalSpots     int
}

// NewAvailability builds the capacity view for a departure and its occupancy
func NewAvailability(d *Departure, occupied int) Availability {
	return Availability{
		OccupiedSpots:  occupied,
		RemainingSpots: d.RemainingSpots(occupied),
		TotalSpots:     d.MaxParticipants,
	}
}

// IsFull returns true if the departure has no remaining spots
func (a Availability) IsFull() bool {
	return a.RemainingSpots <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (a Availability) OccupancyRate() float64 {
	if a.TotalSpots == 0 {
		return 0
	}
	rate := float64(a.OccupiedSpots) / float64(a.TotalSpots) * 100
	if rate > 100 {
		return 100
	}
	return rate
}
