package domain

import "time"

// RotationMode featured-selection policy
type RotationMode string

const (
	// RotationNextUpcoming features the soonest eligible departure per route
	RotationNextUpcoming RotationMode = "NEXT_UPCOMING"
	// RotationManualOnly features only operator-pinned departures
	RotationManualOnly RotationMode = "MANUAL_ONLY"
)

// IsValid reports whether m is a known mode
func (m RotationMode) IsValid() bool {
	return m == RotationNextUpcoming || m == RotationManualOnly
}

// RotationTrigger who started a rotation run
type RotationTrigger string

const (
	TriggerCron   RotationTrigger = "cron"
	TriggerManual RotationTrigger = "manual"
)

// RotationConfig is the process-wide rotation policy (single row)
type RotationConfig struct {
	IsEnabled          bool
	Mode               RotationMode
	SkipWithinDays     int
	PrioritizeFullMoon bool

	LastRunAt     *time.Time
	LastRunResult *RotationResult

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultRotationConfig returns the policy used when no row exists yet
func DefaultRotationConfig() *RotationConfig {
	return &RotationConfig{
		IsEnabled:          DefaultRotationEnabled,
		Mode:               DefaultRotationMode,
		SkipWithinDays:     DefaultSkipWithinDays,
		PrioritizeFullMoon: DefaultPrioritizeFullMoon,
	}
}

// SkipWindow returns the minimum lead time before auto-featuring
func (c *RotationConfig) SkipWindow() time.Duration {
	return time.Duration(c.SkipWithinDays) * 24 * time.Hour
}

// FeaturedUpdate records a change of the featured departure of a route.
// DepartureID is empty when the route lost its featured departure.
type FeaturedUpdate struct {
	RouteID             string `json:"routeId"`
	DepartureID         string `json:"departureId"`
	PreviousDepartureID string `json:"previousDepartureId,omitempty"`
}

// StatusChange records a status transition applied by rotation
type StatusChange struct {
	DepartureID string          `json:"departureId"`
	OldStatus   DepartureStatus `json:"oldStatus"`
	NewStatus   DepartureStatus `json:"newStatus"`
}

// RotationResult report of one rotation run; persisted as a JSON snapshot
type RotationResult struct {
	RanAt           time.Time        `json:"timestamp"`
	Trigger         RotationTrigger  `json:"trigger"`
	Skipped         bool             `json:"skipped,omitempty"`
	CompletedCount  int              `json:"completedCount"`
	FeaturedUpdates []FeaturedUpdate `json:"featuredUpdates"`
	StatusChanges   []StatusChange   `json:"statusChanges"`
	Errors          []string         `json:"errors"`
	Success         bool             `json:"success"`
}

// NewRotationResult returns an empty successful result
func NewRotationResult(trigger RotationTrigger, now time.Time) *RotationResult {
	return &RotationResult{
		RanAt:           now,
		Trigger:         trigger,
		FeaturedUpdates: []FeaturedUpdate{},
		StatusChanges:   []StatusChange{},
		Errors:          []string{},
		Success:         true,
	}
}

// AddError records a recoverable failure and marks the run unsuccessful
func (r *RotationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Success = false
}
