package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockHTTPMetrics struct{ mock.Mock }

func (m *mockHTTPMetrics) ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	m.Called(method, path, status, d)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &mockHTTPMetrics{}
	m.On("ObserveHTTPRequest", http.MethodGet, "/departures/{departureId}", http.StatusNotFound,
		mock.AnythingOfType("time.Duration")).Once()

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/departures/{departureId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/departures/abc-123", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	m.AssertExpectations(t)
}
