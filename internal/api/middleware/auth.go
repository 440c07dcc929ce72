package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-DepartureService/internal/api/handlers"
)

// AdminIDHeader заголовок, который gateway выставляет для аутентифицированной сессии администратора
const AdminIDHeader = "X-Admin-ID"

const (
	msgMissingAdminID = "требуется аутентификация администратора"
	msgInvalidSecret  = "неверный секрет планировщика"
)

type contextKey string

const adminIDKey contextKey = "admin_id"

// AdminAuth пропускает запрос только при наличии X-Admin-ID и кладет ID администратора в контекст
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID := strings.TrimSpace(r.Header.Get(AdminIDHeader))
		if adminID == "" {
			handlers.RespondUnauthorized(w, msgMissingAdminID)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID достает ID администратора из контекста
func GetAdminID(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(adminIDKey).(string)
	return adminID, ok && adminID != ""
}

// CronAuth проверяет заголовок Authorization: Bearer <secret> планировщика
// Пустой secret отключает проверку
func CronAuth(secret string) func(http.Handler) http.Handler {
	expected := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(expected) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok || subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
				handlers.RespondUnauthorized(w, msgInvalidSecret)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}
