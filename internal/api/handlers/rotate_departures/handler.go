package rotate_departures

import (
	"net/http"

	"github.com/m04kA/SMC-DepartureService/internal/api/handlers"
	"github.com/m04kA/SMC-DepartureService/internal/api/middleware"
	"github.com/m04kA/SMC-DepartureService/internal/domain"
	rotateDepartures "github.com/m04kA/SMC-DepartureService/internal/usecase/rotate_departures"
)

// Handler запускает ротацию выездов
// Один и тот же handler обслуживает cron (trigger=cron) и ручной запуск из админки (trigger=manual)
type Handler struct {
	useCase RotateDeparturesUseCase
	trigger domain.RotationTrigger
	logger  Logger
}

func NewHandler(useCase RotateDeparturesUseCase, trigger domain.RotationTrigger, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		trigger: trigger,
		logger:  logger,
	}
}

// Handle POST /api/v1/cron/rotate-departures
// Handle POST /api/v1/admin/departures/rotate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.GetAdminID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &rotateDepartures.Request{
		Trigger: h.trigger,
		AdminID: adminID,
	})
	if err != nil {
		h.logger.Error("POST rotate-departures - Rotation failed: trigger=%s, error=%v", h.trigger, err)
		// Прерванный прогон: отдаем частичный результат со списком ошибок
		if result != nil {
			handlers.RespondJSON(w, http.StatusInternalServerError, result)
			return
		}
		handlers.RespondInternalError(w)
		return
	}

	if result.Skipped {
		h.logger.Info("POST rotate-departures - Rotation disabled, run skipped: trigger=%s", h.trigger)
	} else {
		h.logger.Info("POST rotate-departures - Rotation finished: trigger=%s, success=%t, status_changes=%d, featured_updates=%d",
			h.trigger, result.Success, len(result.StatusChanges), len(result.FeaturedUpdates))
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
