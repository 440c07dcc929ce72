package rotate_departures

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
)

// DepartureRepository интерфейс репозитория выездов
type DepartureRepository interface {
	ListActive(ctx context.Context) ([]*domain.Departure, error)
	UpdateStatus(ctx context.Context, id string, status domain.DepartureStatus) error
	SetFeatured(ctx context.Context, id string, featured bool) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumOccupiedSpots(ctx context.Context, departureIDs []string) (map[string]int, error)
}

// ConfigLoader источник политики ротации (создает значения по умолчанию при отсутствии)
type ConfigLoader interface {
	Load(ctx context.Context) (*domain.RotationConfig, error)
}

// RunResultRepository сохраняет снимок последнего запуска
type RunResultRepository interface {
	SaveRunResult(ctx context.Context, result *domain.RotationResult) error
}

// MetricsRecorder получатель метрик ротации
type MetricsRecorder interface {
	ObserveRotationRun(trigger string, success bool, duration time.Duration)
	IncStatusChange(status string)
	IncFeaturedUpdate()
	IncRotationWriteError()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// NoopMetrics используется, когда метрики выключены
type NoopMetrics struct{}

func (NoopMetrics) ObserveRotationRun(string, bool, time.Duration) {}
func (NoopMetrics) IncStatusChange(string)                         {}
func (NoopMetrics) IncFeaturedUpdate()                             {}
func (NoopMetrics) IncRotationWriteError()                         {}
