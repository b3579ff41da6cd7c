// Package webhook обрабатывает уведомления платежного провайдера
// о завершении оплаты подписки.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
	"github.com/magabrotheeeer/refactor-hub/internal/models"
	"github.com/magabrotheeeer/refactor-hub/internal/observability"
)

// Service определяет интерфейс сервиса обработки платежных событий.
type Service interface {
	ProcessWebhookEvent(ctx context.Context, event *models.WebhookEvent) error
}

// Handler обрабатывает входящие webhook-уведомления провайдера.
type Handler struct {
	log           *slog.Logger
	service       Service
	metrics       *observability.Metrics
	webhookSecret string // Секрет для проверки подписи
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, metrics *observability.Metrics, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		metrics:       metrics,
		webhookSecret: secret,
	}
}

// Проверка подписи webhook (X-Api-Signature)
func (h *Handler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expectedSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedSig), []byte(signature))
}

// ServeHTTP godoc
// @Summary Webhook платежного провайдера
// @Description Принимает уведомления о завершении оплаты и активирует подписку
// @Tags Checkout
// @Accept json
// @Param X-Api-Signature header string true "HMAC-SHA256 подпись тела запроса (base64)"
// @Success 200 "Событие обработано или проигнорировано"
// @Failure 400 "Невалидное тело запроса"
// @Failure 401 "Невалидная подпись"
// @Failure 500 "Ошибка обработки события"
// @Router /webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Api-Signature")
	if signature == "" || !h.verifySignature(body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var event models.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch strings.ToLower(event.Event) {
	case models.EventCheckoutSessionCompleted:
		if err := h.service.ProcessWebhookEvent(r.Context(), &event); err != nil {
			log.Error("failed to process webhook event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		h.metrics.WebhookEventsTotal.WithLabelValues(event.Event).Inc()
		log.Info("webhook processed successfully",
			slog.String("event", event.Event),
			slog.String("session_id", event.Object.ID))
	default:
		h.metrics.WebhookEventsTotal.WithLabelValues("ignored").Inc()
		log.Info("ignored webhook event", slog.String("event", event.Event))
	}

	w.WriteHeader(http.StatusOK)
}
