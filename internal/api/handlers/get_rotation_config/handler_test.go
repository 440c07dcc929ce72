package get_rotation_config

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

	"github.com/m04kA/SMC-DepartureService/internal/domain"
	"github.com/m04kA/SMC-DepartureService/internal/service/rotationconfig/models"
	"github.com/m04kA/SMC-DepartureService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Get(ctx context.Context) (*models.ConfigResponse, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*models.ConfigResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandle_OK(t *testing.T) {
	ranAt := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)
	lastRun := domain.NewRotationResult(domain.TriggerCron, ranAt)
	lastRun.AddError("departure A: update status OPEN -> FULL: deadlock detected")

	svc := &mockService{}
	svc.On("Get", mock.Anything).Return(&models.ConfigResponse{
		IsEnabled:          true,
		Mode:               "NEXT_UPCOMING",
		SkipWithinDays:     7,
		PrioritizeFullMoon: true,
		LastRunAt:          &ranAt,
		LastRunResult:      lastRun,
	}, nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/rotation-config", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NEXT_UPCOMING", body["mode"])
	assert.Equal(t, float64(7), body["skipWithinDays"])

	lastRunBody, ok := body["lastRunResult"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, lastRunBody["success"])
	assert.Len(t, lastRunBody["errors"], 1)
	svc.AssertExpectations(t)
}

func TestHandle_ServiceError(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/rotation-config", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"внутренняя ошибка сервера"}`, rec.Body.String())
}
