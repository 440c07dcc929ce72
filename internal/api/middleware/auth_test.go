package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestCronAuth(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"valid secret", "s3cret", "Bearer s3cret", http.StatusNoContent, true},
		{"case-insensitive scheme", "s3cret", "bearer s3cret", http.StatusNoContent, true},
		{"wrong secret", "s3cret", "Bearer s3cre", http.StatusUnauthorized, false},
		{"secret with suffix", "s3cret", "Bearer s3cret2", http.StatusUnauthorized, false},
		{"missing header", "s3cret", "", http.StatusUnauthorized, false},
		{"basic scheme", "s3cret", "Basic s3cret", http.StatusUnauthorized, false},
		{"no secret configured", "", "", http.StatusNoContent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := CronAuth(tt.secret)(okHandler(&called))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/cron/rotate-departures", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestAdminAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		called := false
		rec := httptest.NewRecorder()

		AdminAuth(okHandler(&called)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
		assert.JSONEq(t, `{"error":"требуется аутентификация администратора"}`, rec.Body.String())
	})

	t.Run("admin id in context", func(t *testing.T) {
		var got string
		h := AdminAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = GetAdminID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(AdminIDHeader, "admin-42")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "admin-42", got)
	})
}
