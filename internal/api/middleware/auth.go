package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
)

const (
	// HeaderUserID идентификатор клиента (NIC или телефон)
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя
	HeaderUserRole = "X-User-Role"

	// RoleAdmin роль администратора сервисного центра
	RoleAdmin = "ADMIN"
)

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgForbidden     = "доступ разрешен только администратору"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth требует заголовок X-User-ID и кладет его значение в контекст.
// Аутентификация выполняется шлюзом перед сервисом.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// Admin пропускает только запросы с ролью ADMIN
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderUserRole)), RoleAdmin) {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUserID кладет идентификатор пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
