package rotate_departures

import (
	"context"

	rotateDepartures "github.com/m04kA/SMC-DepartureService/internal/usecase/rotate_departures"
)

type RotateDeparturesUseCase interface {
	Execute(ctx context.Context, req *rotateDepartures.Request) (*rotateDepartures.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
