package list_route_departures

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DepartureService/internal/api/handlers"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures"
)

const (
	msgRouteNotFound = "маршрут не найден"
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

// Handle GET /api/v1/routes/{routeId}/departures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routeID := mux.Vars(r)["routeId"]

	result, err := h.service.ListByRoute(r.Context(), routeID)
	if err != nil {
		switch {
		case errors.Is(err, departures.ErrRouteNotFound):
			h.logger.Warn("GET /routes/{id}/departures - Route not found: route_id=%s", routeID)
			handlers.RespondNotFound(w, msgRouteNotFound)

		default:
			h.logger.Error("GET /routes/{id}/departures - Failed to list departures: route_id=%s, error=%v", routeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /routes/{id}/departures - Departures listed: route_id=%s, count=%d", routeID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
