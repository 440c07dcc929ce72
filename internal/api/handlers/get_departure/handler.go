package get_departure

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DepartureService/internal/api/handlers"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures"
)

const (
	msgNotFound = "выезд не найден"
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

// Handle GET /api/v1/admin/departures/{departureId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	departureID := mux.Vars(r)["departureId"]

	departure, err := h.service.GetByID(r.Context(), departureID)
	if err != nil {
		switch {
		case errors.Is(err, departures.ErrDepartureNotFound):
			h.logger.Warn("GET /admin/departures/{id} - Departure not found: departure_id=%s", departureID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/departures/{id} - Failed to get departure: departure_id=%s, error=%v", departureID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, departure)
}
