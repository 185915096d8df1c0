// Проставление request id для трассировки запросов в логах
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey string

// RequestIDKey — ключ, под которым request id лежит в контексте запроса.
const RequestIDKey ctxKey = "request_id"

// RequestIDHeader — заголовок с id запроса (входящий переиспользуем,
// если клиент его прислал).
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware присваивает каждому запросу уникальный id (uuid),
// кладёт его в контекст и дублирует в заголовок ответа.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), RequestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext достаёт request id из контекста (пустая строка, если нет).
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
