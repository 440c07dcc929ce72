package get_featured_queue

import (
	"context"

	"github.com/m04kA/SMC-DepartureService/internal/service/departures/models"
)

type DepartureService interface {
	GetFeaturedQueue(ctx context.Context, routeID string) (*models.FeaturedQueueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
