package create_departure

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DepartureService/internal/api/handlers"
	"github.com/m04kA/SMC-DepartureService/internal/api/middleware"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidData        = "некорректные данные выезда"
	msgRouteNotFound      = "маршрут не найден"
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

// Handle POST /api/v1/admin/departures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.GetAdminID(r.Context())

	var req CreateDepartureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/departures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(adminID)
	if err != nil {
		h.logger.Warn("POST /admin/departures - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, departures.ErrInvalidInput):
			h.logger.Warn("POST /admin/departures - Invalid data: route_id=%s, error=%v", req.RouteID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, departures.ErrRouteNotFound):
			h.logger.Warn("POST /admin/departures - Route not found: route_id=%s", req.RouteID)
			handlers.RespondNotFound(w, msgRouteNotFound)

		default:
			h.logger.Error("POST /admin/departures - Failed to create departure: route_id=%s, error=%v", req.RouteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/departures - Departure created: departure_id=%s, route_id=%s, admin_id=%s",
		result.ID, result.RouteID, adminID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
