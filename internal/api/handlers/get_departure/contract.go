package get_departure

import (
	"context"

	"github.com/m04kA/SMC-DepartureService/internal/service/departures/models"
)

type DepartureService interface {
	GetByID(ctx context.Context, departureID string) (*models.DepartureResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
