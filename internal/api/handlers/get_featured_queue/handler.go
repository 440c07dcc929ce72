package get_featured_queue

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

// Handle GET /api/v1/admin/routes/{routeId}/featured-queue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routeID := mux.Vars(r)["routeId"]

	queue, err := h.service.GetFeaturedQueue(r.Context(), routeID)
	if err != nil {
		switch {
		case errors.Is(err, departures.ErrRouteNotFound):
			h.logger.Warn("GET /admin/routes/{id}/featured-queue - Route not found: route_id=%s", routeID)
			handlers.RespondNotFound(w, msgRouteNotFound)

		default:
			h.logger.Error("GET /admin/routes/{id}/featured-queue - Failed to build queue: route_id=%s, error=%v", routeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, queue)
}
