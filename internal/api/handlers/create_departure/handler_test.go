package create_departure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DepartureService/internal/api/middleware"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures/models"
	"github.com/m04kA/SMC-DepartureService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Create(ctx context.Context, req *models.CreateDepartureRequest) (*models.DepartureResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.DepartureResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

const validBody = `{
	"routeId": "machame-7",
	"arrivalDate": "2025-06-10",
	"startDate": "2025-06-11",
	"summitDate": "2025-06-16",
	"endDate": "2025-06-18",
	"price": 2450,
	"currency": "USD",
	"minParticipants": 2,
	"maxParticipants": 12,
	"isFullMoon": true
}`

func post(svc DepartureService, body string) *httptest.ResponseRecorder {
	h := middleware.AdminAuth(http.HandlerFunc(NewHandler(svc, logger.Nop()).Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/departures", strings.NewReader(body))
	req.Header.Set(middleware.AdminIDHeader, "admin-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &mockService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateDepartureRequest) bool {
		return req.AdminID == "admin-1" &&
			req.RouteID == "machame-7" &&
			req.ArrivalDate.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)) &&
			req.SummitDate != nil && req.SummitDate.Day() == 16 &&
			req.IsFullMoon
	})).Return(&models.DepartureResponse{ID: "dep-1", RouteID: "machame-7", Status: "OPEN"}, nil).Once()

	rec := post(svc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"dep-1"`)
	svc.AssertExpectations(t)
}

func TestHandle_BadDate(t *testing.T) {
	svc := &mockService{}

	rec := post(svc, strings.Replace(validBody, "2025-06-10", "10.06.2025", 1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{departures.ErrInvalidInput, http.StatusBadRequest},
		{departures.ErrRouteNotFound, http.StatusNotFound},
		{departures.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := post(svc, validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
