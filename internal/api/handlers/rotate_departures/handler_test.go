package rotate_departures

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DepartureService/internal/api/middleware"
	"github.com/m04kA/SMC-DepartureService/internal/domain"
	rotateDepartures "github.com/m04kA/SMC-DepartureService/internal/usecase/rotate_departures"
	"github.com/m04kA/SMC-DepartureService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *rotateDepartures.Request) (*rotateDepartures.Response, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*rotateDepartures.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

var testTime = time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)

func TestHandle_ManualTrigger(t *testing.T) {
	uc := &mockUseCase{}
	result := &rotateDepartures.Response{RotationResult: *domain.NewRotationResult(domain.TriggerManual, testTime)}
	result.FeaturedUpdates = append(result.FeaturedUpdates, domain.FeaturedUpdate{RouteID: "R", DepartureID: "B"})

	uc.On("Execute", mock.Anything, &rotateDepartures.Request{Trigger: domain.TriggerManual, AdminID: "admin-1"}).
		Return(result, nil).Once()

	h := middleware.AdminAuth(http.HandlerFunc(NewHandler(uc, domain.TriggerManual, logger.Nop()).Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/departures/rotate", nil)
	req.Header.Set(middleware.AdminIDHeader, "admin-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "manual", body["trigger"])
	assert.Len(t, body["featuredUpdates"], 1)
	uc.AssertExpectations(t)
}

func TestHandle_CronBehindSecret(t *testing.T) {
	uc := &mockUseCase{}
	h := middleware.CronAuth("s3cret")(http.HandlerFunc(NewHandler(uc, domain.TriggerCron, logger.Nop()).Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cron/rotate-departures", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_AbortedRunReturnsPartialResult(t *testing.T) {
	uc := &mockUseCase{}
	result := &rotateDepartures.Response{RotationResult: *domain.NewRotationResult(domain.TriggerCron, testTime)}
	result.AddError("list active departures: connection refused")

	uc.On("Execute", mock.Anything, mock.Anything).
		Return(result, rotateDepartures.ErrInternal).Once()

	rec := httptest.NewRecorder()
	NewHandler(uc, domain.TriggerCron, logger.Nop()).
		Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cron/rotate-departures", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, []interface{}{"list active departures: connection refused"}, body["errors"])
}

func TestHandle_UnexpectedError(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	rec := httptest.NewRecorder()
	NewHandler(uc, domain.TriggerCron, logger.Nop()).
		Handle(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"внутренняя ошибка сервера"}`, rec.Body.String())
}
