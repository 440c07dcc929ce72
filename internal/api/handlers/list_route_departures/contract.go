package list_route_departures

import (
	"context"

	"github.com/m04kA/SMC-DepartureService/internal/service/departures/models"
)

type DepartureService interface {
	ListByRoute(ctx context.Context, routeID string) (*models.DepartureListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
