package cancel_departure

import "context"

type DepartureService interface {
	Cancel(ctx context.Context, departureID string, reason string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
