package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"
	staffKey  ctxKey = "isStaff"

	userIDHeader = "X-User-ID"
	staffHeader  = "X-Staff"
)

// Auth проверяет заголовок X-User-ID и кладет ID запрашивающего в контекст.
// Заголовок X-Staff: true выставляется шлюзом для персонала клиники -
// сервис доверяет ему, аутентификацию выполняет шлюз.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUserID := r.Header.Get(userIDHeader)
		if rawUserID == "" {
			http.Error(w, `{"code":401,"message":"заголовок X-User-ID обязателен"}`, http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, `{"code":401,"message":"некорректный X-User-ID"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, staffKey, r.Header.Get(staffHeader) == "true")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID запрашивающего из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsStaff возвращает признак персонала клиники из контекста
func IsStaff(ctx context.Context) bool {
	isStaff, ok := ctx.Value(staffKey).(bool)
	return ok && isStaff
}
