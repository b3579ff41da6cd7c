// Package checkoutredirect реализует браузерный вариант запроса платежной
// сессии: GET /checkout?user_id= сразу перенаправляет на страницу оплаты.
package checkoutredirect

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/refactor-hub/internal/http/response"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/identity"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
)

// Service определяет интерфейс сервиса платежных сессий.
type Service interface {
	CreateSession(ctx context.Context, identity string) (string, error)
}

// Handler обрабатывает браузерный переход на страницу оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Перейти на страницу оплаты
// @Description Создает платежную сессию и перенаправляет браузер на страницу оплаты
// @Tags Checkout
// @Param user_id query string true "Идентификатор пользователя (email)"
// @Success 303 "Перенаправление на страницу оплаты"
// @Failure 400 {object} response.ErrorResponse "Отсутствует или невалиден user_id"
// @Failure 500 {object} response.ErrorResponse "Ошибка платежного провайдера"
// @Router /checkout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkoutredirect"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		log.Error("missing user_id query parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("user_id query parameter required"))
		return
	}

	userID, err := identity.Resolve(raw)
	if err != nil {
		log.Error("invalid user_id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user_id"))
		return
	}

	checkoutURL, err := h.service.CreateSession(r.Context(), userID)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	http.Redirect(w, r, checkoutURL, http.StatusSeeOther)
}
