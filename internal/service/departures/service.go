package departures

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
	departureRepo "github.com/m04kA/SMC-DepartureService/internal/infra/storage/departure"
	routeRepo "github.com/m04kA/SMC-DepartureService/internal/infra/storage/route"
	"github.com/m04kA/SMC-DepartureService/internal/lifecycle"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures/models"
)

// Service сервис для администрирования выездов и ручного управления показом
type Service struct {
	departureRepo DepartureRepository
	bookingRepo   BookingRepository
	routeRepo     RouteRepository
	configLoader  ConfigLoader
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса выездов
func NewService(
	departureRepo DepartureRepository,
	bookingRepo BookingRepository,
	routeRepo RouteRepository,
	configLoader ConfigLoader,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		departureRepo: departureRepo,
		bookingRepo:   bookingRepo,
		routeRepo:     routeRepo,
		configLoader:  configLoader,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ManuallyFeature закрепляет (feature = true) или открепляет выезд оператором
// При закреплении все остальные закрепления маршрута снимаются в той же транзакции.
// Открепить можно и завершенный выезд
func (s *Service) ManuallyFeature(ctx context.Context, departureID string, feature bool) (*models.DepartureResponse, error) {
	s.logger.Info("ManuallyFeature: departure id=%s, feature=%t", departureID, feature)

	var (
		result   *domain.Departure
		occupied int
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем выезд с блокировкой строки
		d, err := s.departureRepo.GetByID(txCtx, departureID)
		if err != nil {
			if errors.Is(err, departureRepo.ErrDepartureNotFound) {
				s.logger.Warn("ManuallyFeature: departure id=%s not found", departureID)
				return ErrDepartureNotFound
			}
			s.logger.Error("ManuallyFeature: repository error for departure id=%s: %v", departureID, err)
			return fmt.Errorf("%w: ManuallyFeature - get departure: %v", ErrInternal, err)
		}

		// 2. Завершенные и отмененные выезды нельзя закрепить, но снять закрепление можно
		if feature && d.Status.IsTerminal() {
			s.logger.Warn("ManuallyFeature: departure id=%s is in terminal status=%s", departureID, d.Status)
			return ErrInvalidState
		}

		// 3. Снимаем закрепления с остальных выездов маршрута
		if feature {
			cleared, err := s.departureRepo.ClearRoutePins(txCtx, d.RouteID, d.ID)
			if err != nil {
				s.logger.Error("ManuallyFeature: failed to clear pins on route=%s: %v", d.RouteID, err)
				return fmt.Errorf("%w: ManuallyFeature - clear route pins: %v", ErrInternal, err)
			}
			if cleared > 0 {
				s.logger.Info("ManuallyFeature: cleared %d featured departures on route=%s", cleared, d.RouteID)
			}
		}

		// 4. Выставляем или снимаем закрепление
		if err := s.departureRepo.SetManualPin(txCtx, d.ID, feature); err != nil {
			if errors.Is(err, departureRepo.ErrDepartureNotFound) {
				return ErrDepartureNotFound
			}
			s.logger.Error("ManuallyFeature: failed to set pin on departure id=%s: %v", departureID, err)
			return fmt.Errorf("%w: ManuallyFeature - set manual pin: %v", ErrInternal, err)
		}

		d.IsManuallyFeatured = feature
		d.IsFeatured = feature

		// 5. Заполненность для ответа
		spots, err := s.occupiedSpots(txCtx, []*domain.Departure{d})
		if err != nil {
			s.logger.Error("ManuallyFeature: failed to sum occupied spots for departure id=%s: %v", departureID, err)
			return fmt.Errorf("%w: ManuallyFeature - sum occupied spots: %v", ErrInternal, err)
		}

		result = d
		occupied = spots[d.ID]
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("ManuallyFeature: departure id=%s isManuallyFeatured=%t", departureID, feature)
	return models.FromDomainDeparture(result, occupied), nil
}

// GetFeaturedQueue возвращает кандидатов маршрута в том порядке, в котором их выберет ротация
func (s *Service) GetFeaturedQueue(ctx context.Context, routeID string) (*models.FeaturedQueueResponse, error) {
	s.logger.Info("GetFeaturedQueue: route=%s", routeID)

	route, err := s.getRoute(ctx, "GetFeaturedQueue", routeID)
	if err != nil {
		return nil, err
	}

	departures, err := s.departureRepo.ListByRoute(ctx, routeID, false)
	if err != nil {
		s.logger.Error("GetFeaturedQueue: failed to list departures for route=%s: %v", routeID, err)
		return nil, fmt.Errorf("%w: GetFeaturedQueue - list departures: %v", ErrInternal, err)
	}

	cfg, err := s.configLoader.Load(ctx)
	if err != nil {
		s.logger.Error("GetFeaturedQueue: failed to load rotation config: %v", err)
		return nil, fmt.Errorf("%w: GetFeaturedQueue - load config: %v", ErrInternal, err)
	}

	ranked := lifecycle.RankCandidates(departures, cfg, s.timeProvider.Now())

	occupied, err := s.occupiedSpots(ctx, ranked)
	if err != nil {
		s.logger.Error("GetFeaturedQueue: failed to sum occupied spots for route=%s: %v", routeID, err)
		return nil, fmt.Errorf("%w: GetFeaturedQueue - sum occupied spots: %v", ErrInternal, err)
	}

	resp := &models.FeaturedQueueResponse{
		RouteID:    route.ID,
		RouteTitle: route.Title,
		Mode:       string(cfg.Mode),
		Items:      make([]*models.QueueItem, 0, len(ranked)),
	}
	for i, d := range ranked {
		resp.Items = append(resp.Items, &models.QueueItem{
			Position:          i + 1,
			DepartureResponse: models.FromDomainDeparture(d, occupied[d.ID]),
		})
	}

	s.logger.Info("GetFeaturedQueue: route=%s has %d candidates", routeID, len(resp.Items))
	return resp, nil
}

// Create создает новый выезд маршрута в статусе OPEN
func (s *Service) Create(ctx context.Context, req *models.CreateDepartureRequest) (*models.DepartureResponse, error) {
	s.logger.Info("Create: route=%s, start=%s by admin=%s",
		req.RouteID, req.StartDate.Format(domain.DateFormat), req.AdminID)

	// 1. Валидация входных данных
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	d := req.ToDomain()
	if err := d.ValidateDates(); err != nil {
		s.logger.Warn("Create: invalid dates: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем существование маршрута
	if _, err := s.getRoute(ctx, "Create", req.RouteID); err != nil {
		return nil, err
	}

	// 3. Сохраняем
	d.ID = uuid.NewString()
	d.Status = domain.DepartureOpen

	created, err := s.departureRepo.Create(ctx, d)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: departure id=%s created for route=%s", created.ID, created.RouteID)
	return models.FromDomainDeparture(created, 0), nil
}

// GetByID получает выезд с количеством занятых мест
func (s *Service) GetByID(ctx context.Context, departureID string) (*models.DepartureResponse, error) {
	s.logger.Info("GetByID: fetching departure id=%s", departureID)

	d, err := s.departureRepo.GetByID(ctx, departureID)
	if err != nil {
		if errors.Is(err, departureRepo.ErrDepartureNotFound) {
			s.logger.Warn("GetByID: departure id=%s not found", departureID)
			return nil, ErrDepartureNotFound
		}
		s.logger.Error("GetByID: repository error for departure id=%s: %v", departureID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByDepartureID(ctx, departureID)
	if err != nil {
		s.logger.Error("GetByID: failed to get bookings for departure id=%s: %v", departureID, err)
		return nil, fmt.Errorf("%w: GetByID - get bookings: %v", ErrInternal, err)
	}

	return models.FromDomainDeparture(d, domain.OccupiedSpots(bookings)), nil
}

// ListByRoute возвращает предстоящие выезды маршрута (без завершенных и отмененных)
func (s *Service) ListByRoute(ctx context.Context, routeID string) (*models.DepartureListResponse, error) {
	s.logger.Info("ListByRoute: route=%s", routeID)

	if _, err := s.getRoute(ctx, "ListByRoute", routeID); err != nil {
		return nil, err
	}

	departures, err := s.departureRepo.ListByRoute(ctx, routeID, false)
	if err != nil {
		s.logger.Error("ListByRoute: repository error for route=%s: %v", routeID, err)
		return nil, fmt.Errorf("%w: ListByRoute - repository error: %v", ErrInternal, err)
	}

	occupied, err := s.occupiedSpots(ctx, departures)
	if err != nil {
		s.logger.Error("ListByRoute: failed to sum occupied spots for route=%s: %v", routeID, err)
		return nil, fmt.Errorf("%w: ListByRoute - sum occupied spots: %v", ErrInternal, err)
	}

	return models.FromDomainDepartureList(routeID, departures, occupied), nil
}

// Cancel отменяет выезд (единственный переход в CANCELLED)
func (s *Service) Cancel(ctx context.Context, departureID string, reason string) error {
	s.logger.Info("Cancel: cancelling departure id=%s", departureID)

	if err := validateCancelReason(reason); err != nil {
		s.logger.Warn("Cancel: validation failed: %v", err)
		return err
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		d, err := s.departureRepo.GetByID(txCtx, departureID)
		if err != nil {
			if errors.Is(err, departureRepo.ErrDepartureNotFound) {
				s.logger.Warn("Cancel: departure id=%s not found", departureID)
				return ErrDepartureNotFound
			}
			s.logger.Error("Cancel: repository error for departure id=%s: %v", departureID, err)
			return fmt.Errorf("%w: Cancel - get departure: %v", ErrInternal, err)
		}

		if !d.CanBeCancelled() {
			s.logger.Warn("Cancel: departure id=%s cannot be cancelled, status=%s", departureID, d.Status)
			return ErrInvalidState
		}

		if err := s.departureRepo.Cancel(txCtx, departureID, reason); err != nil {
			if errors.Is(err, departureRepo.ErrDepartureNotFound) {
				return ErrDepartureNotFound
			}
			s.logger.Error("Cancel: repository error for departure id=%s: %v", departureID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: departure id=%s cancelled", departureID)
		return nil
	})
}

// Вспомогательные методы

func (s *Service) getRoute(ctx context.Context, op string, routeID string) (*domain.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, routeRepo.ErrRouteNotFound) {
			s.logger.Warn("%s: route id=%s not found", op, routeID)
			return nil, ErrRouteNotFound
		}
		s.logger.Error("%s: failed to get route id=%s: %v", op, routeID, err)
		return nil, fmt.Errorf("%w: %s - get route: %v", ErrInternal, op, err)
	}
	return route, nil
}

// occupiedSpots возвращает занятые места по ID выезда
func (s *Service) occupiedSpots(ctx context.Context, departures []*domain.Departure) (map[string]int, error) {
	if len(departures) == 0 {
		return map[string]int{}, nil
	}

	ids := make([]string, len(departures))
	for i, d := range departures {
		ids[i] = d.ID
	}
	return s.bookingRepo.SumOccupiedSpots(ctx, ids)
}
