package update_rotation_config

import (
	"context"

	"github.com/m04kA/SMC-DepartureService/internal/service/rotationconfig/models"
)

type ConfigService interface {
	Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
