package cancel_departure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-DepartureService/internal/api/middleware"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures"
	"github.com/m04kA/SMC-DepartureService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Cancel(ctx context.Context, departureID string, reason string) error {
	return m.Called(ctx, departureID, reason).Error(0)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		reason     string
		svcErr     error
		callSvc    bool
		wantStatus int
	}{
		{"cancelled", `{"reason":"storm warning"}`, "storm warning", nil, true, http.StatusOK},
		{"malformed body", `{"reason":`, "", nil, false, http.StatusBadRequest},
		{"empty reason", `{"reason":""}`, "", departures.ErrInvalidInput, true, http.StatusBadRequest},
		{"not found", `{"reason":"x"}`, "x", departures.ErrDepartureNotFound, true, http.StatusNotFound},
		{"already completed", `{"reason":"x"}`, "x", departures.ErrInvalidState, true, http.StatusConflict},
		{"internal", `{"reason":"x"}`, "x", departures.ErrInternal, true, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.callSvc {
				svc.On("Cancel", mock.Anything, "dep-1", tt.reason).Return(tt.svcErr).Once()
			}

			r := mux.NewRouter()
			r.Use(middleware.AdminAuth)
			r.HandleFunc("/api/v1/admin/departures/{departureId}/cancel", NewHandler(svc, logger.Nop()).Handle).
				Methods(http.MethodPatch)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/departures/dep-1/cancel", strings.NewReader(tt.body))
			req.Header.Set(middleware.AdminIDHeader, "admin-1")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
			if !tt.callSvc {
				svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
