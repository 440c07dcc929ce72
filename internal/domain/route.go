package domain

// Route is a recurring trip template (e.g. "Machame 7 days").
// The engine only reads routes.
type Route struct {
	ID           string
	Title        string
	DurationDays int
}
