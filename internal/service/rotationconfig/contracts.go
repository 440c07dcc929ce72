package rotationconfig

import (
	"context"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации ротации
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.RotationConfig, error)
	CreateDefault(ctx context.Context, cfg *domain.RotationConfig) (*domain.RotationConfig, error)
	UpdatePolicy(ctx context.Context, cfg *domain.RotationConfig) (*domain.RotationConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
