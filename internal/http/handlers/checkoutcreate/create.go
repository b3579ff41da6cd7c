// Package checkoutcreate обрабатывает запросы на создание платежной сессии.
package checkoutcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/refactor-hub/internal/http/response"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/identity"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
	"github.com/magabrotheeeer/refactor-hub/internal/observability"
)

// CreateSessionRequest представляет запрос на создание платежной сессии.
type CreateSessionRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// Service определяет интерфейс сервиса платежных сессий.
type Service interface {
	CreateSession(ctx context.Context, identity string) (string, error)
}

// Handler обрабатывает запросы на создание платежной сессии.
type Handler struct {
	log      *slog.Logger // Логгер для записи информации и ошибок
	service  Service
	metrics  *observability.Metrics
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, metrics *observability.Metrics) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать платежную сессию
// @Description Создает платежную сессию подписки и возвращает адрес страницы оплаты
// @Tags Checkout
// @Accept  json
// @Produce  json
// @Param request body CreateSessionRequest true "Идентификатор пользователя"
// @Success 200 {object} response.CheckoutResponse "Адрес страницы оплаты"
// @Failure 400 {object} response.ErrorResponse "Отсутствует или невалиден user_id"
// @Failure 500 {object} response.ErrorResponse "Ошибка платежного провайдера"
// @Router /create-checkout-session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkoutcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("user_id required"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("user_id required"))
		return
	}

	userID, err := identity.Resolve(req.UserID)
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

	log.Info("checkout session issued", slog.String("user_id", userID))
	h.metrics.CheckoutSessionsTotal.Inc()
	render.JSON(w, r, response.CheckoutResponse{CheckoutURL: checkoutURL})
}
