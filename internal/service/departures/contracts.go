package departures

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
)

// DepartureRepository интерфейс репозитория выездов
type DepartureRepository interface {
	Create(ctx context.Context, d *domain.Departure) (*domain.Departure, error)
	GetByID(ctx context.Context, id string) (*domain.Departure, error)
	ListByRoute(ctx context.Context, routeID string, includeTerminal bool) ([]*domain.Departure, error)
	SetManualPin(ctx context.Context, id string, pinned bool) error
	ClearRoutePins(ctx context.Context, routeID string, exceptID string) (int64, error)
	Cancel(ctx context.Context, id string, reason string) error
}

// BookingRepository интерфейс репозитория бронирований (только чтение)
type BookingRepository interface {
	SumOccupiedSpots(ctx context.Context, departureIDs []string) (map[string]int, error)
	GetByDepartureID(ctx context.Context, departureID string) ([]*domain.Booking, error)
}

// RouteRepository интерфейс репозитория маршрутов
type RouteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Route, error)
}

// ConfigLoader источник политики ротации
type ConfigLoader interface {
	Load(ctx context.Context) (*domain.RotationConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
