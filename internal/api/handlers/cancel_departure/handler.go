package cancel_departure

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
	msgInvalidReason      = "некорректная причина отмены"
	msgNotFound           = "выезд не найден"
	msgCannotCancel       = "выезд уже завершен или отменен"
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

// Handle PATCH /api/v1/admin/departures/{departureId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	departureID := mux.Vars(r)["departureId"]
	adminID, _ := middleware.GetAdminID(r.Context())

	var req CancelDepartureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/departures/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), departureID, req.Reason); err != nil {
		switch {
		case errors.Is(err, departures.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/departures/{id}/cancel - Invalid reason: departure_id=%s, error=%v", departureID, err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, departures.ErrDepartureNotFound):
			h.logger.Warn("PATCH /admin/departures/{id}/cancel - Departure not found: departure_id=%s", departureID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, departures.ErrInvalidState):
			h.logger.Warn("PATCH /admin/departures/{id}/cancel - Cannot cancel: departure_id=%s", departureID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /admin/departures/{id}/cancel - Failed to cancel departure: departure_id=%s, error=%v",
				departureID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/departures/{id}/cancel - Departure cancelled: departure_id=%s, admin_id=%s",
		departureID, adminID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
