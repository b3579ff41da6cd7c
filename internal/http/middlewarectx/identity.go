// Package middlewarectx содержит middleware, кладущие данные запроса в контекст.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/refactor-hub/internal/lib/identity"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
	"github.com/magabrotheeeer/refactor-hub/internal/http/response"
)

type ctxKey string

// Identity ключ контекста с проверенным идентификатором пользователя.
const Identity ctxKey = "identity"

// IdentityMiddleware извлекает идентификатор пользователя из заголовка
// User-ID и проверяет его форму. Заголовок объявлен клиентом и не является
// границей безопасности, но сервер не доверяет клиентской валидации
// и выполняет свою.
func IdentityMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("User-ID")
			if raw == "" {
				log.Error("missing User-ID header")
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("Missing User-ID header"))
				return
			}

			id, err := identity.Resolve(raw)
			if err != nil {
				log.Error("invalid User-ID header", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid User-ID header"))
				return
			}

			ctx := context.WithValue(r.Context(), Identity, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext возвращает идентификатор, положенный IdentityMiddleware.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(Identity).(string)
	return id, ok && id != ""
}
