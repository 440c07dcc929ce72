package update_rotation_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-DepartureService/internal/api/middleware"
	"github.com/m04kA/SMC-DepartureService/internal/service/rotationconfig"
	"github.com/m04kA/SMC-DepartureService/internal/service/rotationconfig/models"
	"github.com/m04kA/SMC-DepartureService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.ConfigResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func put(svc ConfigService, body string) *httptest.ResponseRecorder {
	h := middleware.AdminAuth(http.HandlerFunc(NewHandler(svc, logger.Nop()).Handle))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/rotation-config", strings.NewReader(body))
	req.Header.Set(middleware.AdminIDHeader, "admin-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PartialUpdate(t *testing.T) {
	svc := &mockService{}
	svc.On("Update", mock.Anything, mock.MatchedBy(func(req *models.UpdateConfigRequest) bool {
		return req.AdminID == "admin-7" &&
			req.SkipWithinDays != nil && *req.SkipWithinDays == 14 &&
			req.Mode == nil && req.IsEnabled == nil && req.PrioritizeFullMoon == nil
	})).Return(&models.ConfigResponse{IsEnabled: true, Mode: "NEXT_UPCOMING", SkipWithinDays: 14}, nil).Once()

	rec := put(svc, `{"skipWithinDays":14}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skipWithinDays":14`)
	svc.AssertExpectations(t)
}

func TestHandle_Invalid(t *testing.T) {
	svc := &mockService{}
	svc.On("Update", mock.Anything, mock.Anything).Return(nil, rotationconfig.ErrInvalidInput).Once()

	rec := put(svc, `{"mode":"RANDOM"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	svc := &mockService{}

	rec := put(svc, `{"skipWithinDays":"soon"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
