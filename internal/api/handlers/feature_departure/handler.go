package feature_departure

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DepartureService/internal/api/handlers"
	"github.com/m04kA/SMC-DepartureService/internal/api/middleware"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFeature     = "поле feature обязательно"
	msgNotFound           = "выезд не найден"
	msgInvalidState       = "выезд завершен или отменен"
)

type Handler struct {
	service DepartureService
	logger  Logger
}

func NewHandler(service DepartureService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/departures/{departureId}/feature
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	departureID := mux.Vars(r)["departureId"]
	adminID, _ := middleware.GetAdminID(r.Context())

	var req FeatureDepartureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/departures/{id}/feature - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Feature == nil {
		h.logger.Warn("PATCH /admin/departures/{id}/feature - Missing feature flag: departure_id=%s", departureID)
		handlers.RespondBadRequest(w, msgMissingFeature)
		return
	}

	result, err := h.service.ManuallyFeature(r.Context(), departureID, *req.Feature)
	if err != nil {
		switch {
		case errors.Is(err, departures.ErrDepartureNotFound):
			h.logger.Warn("PATCH /admin/departures/{id}/feature - Departure not found: departure_id=%s", departureID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, departures.ErrInvalidState):
			h.logger.Warn("PATCH /admin/departures/{id}/feature - Terminal departure: departure_id=%s", departureID)
			handlers.RespondConflict(w, msgInvalidState)

		default:
			h.logger.Error("PATCH /admin/departures/{id}/feature - Failed to update pin: departure_id=%s, error=%v",
				departureID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/departures/{id}/feature - Pin updated: departure_id=%s, feature=%t, admin_id=%s",
		departureID, *req.Feature, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
