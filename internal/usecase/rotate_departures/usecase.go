package rotate_departures

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
	"github.com/m04kA/SMC-DepartureService/internal/lifecycle"
)

// UseCase use case ежедневной ротации выездов: пересчет статусов и выбор показываемого выезда маршрута
type UseCase struct {
	departureRepo DepartureRepository
	bookingRepo   BookingRepository
	configLoader  ConfigLoader
	runResultRepo RunResultRepository
	metrics       MetricsRecorder
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	departureRepo DepartureRepository,
	bookingRepo BookingRepository,
	configLoader ConfigLoader,
	runResultRepo RunResultRepository,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = NoopMetrics{}
	}

	return &UseCase{
		departureRepo: departureRepo,
		bookingRepo:   bookingRepo,
		configLoader:  configLoader,
		runResultRepo: runResultRepo,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет один прогон ротации
// Повторный запуск на тех же данных ничего не меняет
// Ошибки чтения прерывают прогон (ErrInternal), ошибки записи по отдельным выездам собираются в Errors
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Trigger != domain.TriggerCron && req.Trigger != domain.TriggerManual {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTrigger, req.Trigger)
	}

	started := time.Now()
	now := uc.timeProvider.Now()
	result := domain.NewRotationResult(req.Trigger, now)

	uc.logger.Info("RotateDepartures: trigger=%s, admin=%s, now=%s", req.Trigger, req.AdminID, now.Format(time.RFC3339))

	defer func() {
		uc.metrics.ObserveRotationRun(string(req.Trigger), result.Success, time.Since(started))
	}()

	// 1. Загружаем политику ротации
	cfg, err := uc.configLoader.Load(ctx)
	if err != nil {
		uc.logger.Error("RotateDepartures: failed to load rotation config: %v", err)
		result.AddError(fmt.Sprintf("load rotation config: %v", err))
		return &Response{RotationResult: *result}, fmt.Errorf("%w: load config: %v", ErrInternal, err)
	}

	// Выключенная ротация останавливает только cron
	if req.Trigger == domain.TriggerCron && !cfg.IsEnabled {
		uc.logger.Info("RotateDepartures: rotation disabled, cron run skipped")
		result.Skipped = true
		return &Response{RotationResult: *result}, nil
	}

	// 2. Загружаем нетерминальные выезды и занятые места
	departures, err := uc.departureRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("RotateDepartures: failed to list active departures: %v", err)
		result.AddError(fmt.Sprintf("list active departures: %v", err))
		return &Response{RotationResult: *result}, fmt.Errorf("%w: list departures: %v", ErrInternal, err)
	}

	occupied := map[string]int{}
	if len(departures) > 0 {
		ids := make([]string, len(departures))
		for i, d := range departures {
			ids[i] = d.ID
		}

		occupied, err = uc.bookingRepo.SumOccupiedSpots(ctx, ids)
		if err != nil {
			uc.logger.Error("RotateDepartures: failed to sum occupied spots: %v", err)
			result.AddError(fmt.Sprintf("sum occupied spots: %v", err))
			return &Response{RotationResult: *result}, fmt.Errorf("%w: sum occupied spots: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("RotateDepartures: loaded %d active departures", len(departures))

	// 3. Пересчитываем статусы
	uc.applyStatuses(ctx, departures, occupied, now, result)

	// 4. Выбираем показываемый выезд для каждого маршрута
	routeIDs, byRoute := groupByRoute(departures)
	for _, routeID := range routeIDs {
		uc.applyFeatured(ctx, routeID, byRoute[routeID], cfg, now, result)
	}

	// 5. Сохраняем снимок запуска
	if err := uc.runResultRepo.SaveRunResult(ctx, result); err != nil {
		uc.logger.Error("RotateDepartures: failed to save run result: %v", err)
		result.AddError(fmt.Sprintf("save run result: %v", err))
	}

	uc.logger.Info("RotateDepartures: done, success=%t, statusChanges=%d, completed=%d, featuredUpdates=%d, errors=%d",
		result.Success, len(result.StatusChanges), result.CompletedCount, len(result.FeaturedUpdates), len(result.Errors))

	return &Response{RotationResult: *result}, nil
}

// applyStatuses записывает новый статус для каждого выезда, у которого он изменился
// Статус в памяти меняется только после успешной записи
func (uc *UseCase) applyStatuses(
	ctx context.Context,
	departures []*domain.Departure,
	occupied map[string]int,
	now time.Time,
	result *domain.RotationResult,
) {
	for _, d := range departures {
		next := lifecycle.NextStatus(d, occupied[d.ID], now)
		if next == d.Status {
			continue
		}

		if err := uc.departureRepo.UpdateStatus(ctx, d.ID, next); err != nil {
			uc.logger.Warn("RotateDepartures: failed to update status of departure id=%s %s -> %s: %v",
				d.ID, d.Status, next, err)
			result.AddError(fmt.Sprintf("departure %s: update status %s -> %s: %v", d.ID, d.Status, next, err))
			uc.metrics.IncRotationWriteError()
			continue
		}

		result.StatusChanges = append(result.StatusChanges, domain.StatusChange{
			DepartureID: d.ID,
			OldStatus:   d.Status,
			NewStatus:   next,
		})
		if next == domain.DepartureCompleted {
			result.CompletedCount++
		}
		uc.metrics.IncStatusChange(string(next))

		d.Status = next
	}
}

// applyFeatured приводит флаги isFeatured маршрута к выбору SelectFeatured
// Флаг isManuallyFeatured не изменяется. departures может содержать терминальные выезды
// с оставшимся isFeatured: SelectFeatured их не выбирает, поэтому флаг с них снимается
func (uc *UseCase) applyFeatured(
	ctx context.Context,
	routeID string,
	departures []*domain.Departure,
	cfg *domain.RotationConfig,
	now time.Time,
	result *domain.RotationResult,
) {
	selected := lifecycle.SelectFeatured(departures, cfg, now)

	selectedID := ""
	if selected != nil {
		selectedID = selected.ID
	}

	previousID := ""
	for _, d := range departures {
		if d.IsFeatured {
			previousID = d.ID
			break
		}
	}

	failed := false

	// Сначала снимаем флаг с проигравших, затем выставляем победителю
	for _, d := range departures {
		if !d.IsFeatured || d.ID == selectedID {
			continue
		}
		if err := uc.departureRepo.SetFeatured(ctx, d.ID, false); err != nil {
			uc.logger.Warn("RotateDepartures: failed to unfeature departure id=%s on route=%s: %v", d.ID, routeID, err)
			result.AddError(fmt.Sprintf("departure %s: unfeature: %v", d.ID, err))
			uc.metrics.IncRotationWriteError()
			failed = true
			continue
		}
		d.IsFeatured = false
	}

	// Пока на маршруте остается чужой флаг, победителя не выставляем
	if failed {
		return
	}

	if selected != nil && !selected.IsFeatured {
		if err := uc.departureRepo.SetFeatured(ctx, selected.ID, true); err != nil {
			uc.logger.Warn("RotateDepartures: failed to feature departure id=%s on route=%s: %v", selected.ID, routeID, err)
			result.AddError(fmt.Sprintf("departure %s: feature: %v", selected.ID, err))
			uc.metrics.IncRotationWriteError()
			return
		}
		selected.IsFeatured = true
	}

	if previousID == selectedID {
		return
	}

	result.FeaturedUpdates = append(result.FeaturedUpdates, domain.FeaturedUpdate{
		RouteID:             routeID,
		DepartureID:         selectedID,
		PreviousDepartureID: previousID,
	})
	uc.metrics.IncFeaturedUpdate()

	uc.logger.Info("RotateDepartures: route=%s featured %q -> %q", routeID, previousID, selectedID)
}

// groupByRoute группирует выезды по маршруту, сохраняя порядок первого появления маршрута
func groupByRoute(departures []*domain.Departure) ([]string, map[string][]*domain.Departure) {
	order := make([]string, 0)
	byRoute := make(map[string][]*domain.Departure)

	for _, d := range departures {
		if _, ok := byRoute[d.RouteID]; !ok {
			order = append(order, d.RouteID)
		}
		byRoute[d.RouteID] = append(byRoute[d.RouteID], d)
	}

	return order, byRoute
}
