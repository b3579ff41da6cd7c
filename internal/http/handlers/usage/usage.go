// Package usage отдает текущее состояние квоты пользователя.
package usage

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/refactor-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/refactor-hub/internal/http/response"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
	"github.com/magabrotheeeer/refactor-hub/internal/models"
	"github.com/magabrotheeeer/refactor-hub/internal/storage/repository"
)

// Service определяет интерфейс сервиса квот.
type Service interface {
	Status(ctx context.Context, identity string) (*models.QuotaRecord, error)
	Limit() int
}

// Handler обрабатывает запросы состояния квоты.
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
// @Summary Получить состояние квоты
// @Description Возвращает число использованных попыток, лимит и флаг подписки
// @Tags Upload
// @Produce json
// @Param User-ID header string true "Идентификатор пользователя (email)"
// @Success 200 {object} response.UsageResponse "Состояние квоты"
// @Failure 400 {object} response.ErrorResponse "Отсутствует или невалиден заголовок User-ID"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /usage [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usage"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity missing from request context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	rec, err := h.service.Status(r.Context(), userID)
	if err != nil {
		// Пользователь без единой загрузки еще не имеет записи.
		if errors.Is(err, repository.ErrNotFound) {
			render.JSON(w, r, response.UsageResponse{
				Used:       0,
				Limit:      h.service.Limit(),
				Subscribed: false,
			})
			return
		}
		log.Error("failed to read quota status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.UsageResponse{
		Used:       rec.Used,
		Limit:      h.service.Limit(),
		Subscribed: rec.Subscribed,
	})
}
