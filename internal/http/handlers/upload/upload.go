// Package upload реализует HTTP-обработчик загрузки архива на рефакторинг.
//
// Запрос несет идентификатор пользователя в заголовке User-ID и zip-архив
// в multipart-поле file. Ответ трехвариантный: архив с результатом,
// 402 с адресом страницы оплаты при исчерпанном лимите, либо ошибка.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/refactor-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/refactor-hub/internal/http/response"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
	"github.com/magabrotheeeer/refactor-hub/internal/models"
	"github.com/magabrotheeeer/refactor-hub/internal/observability"
	refactorservice "github.com/magabrotheeeer/refactor-hub/internal/services/refactor"
)

// QuotaService описывает интерфейс шлюза квоты.
type QuotaService interface {
	Authorize(ctx context.Context, identity string) (models.QuotaDecision, error)
	Release(ctx context.Context, identity string) error
}

// CheckoutService выпускает платежную сессию для ответа 402, чтобы
// клиенту не понадобился второй запрос за адресом оплаты.
type CheckoutService interface {
	CreateSession(ctx context.Context, identity string) (string, error)
}

// Pipeline описывает конвейер рефакторинга архива.
type Pipeline interface {
	Process(ctx context.Context, name string, archive []byte) ([]byte, int, error)
}

// Handler обрабатывает запросы на загрузку архива.
type Handler struct {
	log      *slog.Logger // Логгер для записи информации и ошибок
	quota    QuotaService
	checkout CheckoutService
	pipeline Pipeline
	metrics  *observability.Metrics
	maxSize  int64
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, quota QuotaService, checkout CheckoutService,
	pipeline Pipeline, metrics *observability.Metrics, maxSize int64) *Handler {
	return &Handler{
		log:      log,
		quota:    quota,
		checkout: checkout,
		pipeline: pipeline,
		metrics:  metrics,
		maxSize:  maxSize,
	}
}

// ServeHTTP godoc
// @Summary Загрузить архив на рефакторинг
// @Description Принимает zip-архив с исходным кодом и возвращает архив с результатом.
// @Description При исчерпанном бесплатном лимите возвращает 402 с адресом страницы оплаты.
// @Tags Uploads
// @Accept  mpfd
// @Produce  octet-stream
// @Param User-ID header string true "Идентификатор пользователя (email)"
// @Param file formData file true "Zip-архив с исходным кодом"
// @Success 200 {file} binary "Архив с результатом рефакторинга"
// @Failure 400 {object} response.ErrorResponse "Невалидный архив или заголовок"
// @Failure 402 {object} response.QuotaExceededResponse "Бесплатный лимит исчерпан"
// @Failure 500 {object} response.ErrorResponse "Ошибка конвейера рефакторинга"
// @Router /upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Missing User-ID header"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("failed to read multipart file", sl.Err(err))
		h.metrics.UploadsTotal.WithLabelValues(observability.OutcomeRejected).Inc()
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Upload a valid .zip"))
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".zip" {
		log.Error("rejected non-zip upload", slog.String("filename", filename))
		h.metrics.UploadsTotal.WithLabelValues(observability.OutcomeRejected).Inc()
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Upload a valid .zip"))
		return
	}

	archive, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read uploaded archive", sl.Err(err))
		h.metrics.UploadsTotal.WithLabelValues(observability.OutcomeRejected).Inc()
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Upload a valid .zip"))
		return
	}

	decision, err := h.quota.Authorize(r.Context(), identity)
	if err != nil {
		log.Error("failed to authorize attempt", sl.Err(err))
		h.metrics.UploadsTotal.WithLabelValues(observability.OutcomeFailed).Inc()
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	if !decision.Allowed {
		checkoutURL, err := h.checkout.CreateSession(r.Context(), identity)
		if err != nil {
			log.Error("failed to create checkout session", sl.Err(err))
			h.metrics.UploadsTotal.WithLabelValues(observability.OutcomeFailed).Inc()
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}
		log.Info("free limit reached",
			slog.String("identity", identity),
			slog.Int("used", decision.Used))
		h.metrics.UploadsTotal.WithLabelValues(observability.OutcomeQuotaExceeded).Inc()
		w.WriteHeader(http.StatusPaymentRequired)
		render.JSON(w, r, response.QuotaExceededResponse{
			Error:       "Free limit reached. Subscribe to continue.",
			CheckoutURL: checkoutURL,
		})
		return
	}

	result, count, err := h.pipeline.Process(r.Context(), filename, archive)
	if err != nil {
		// попытка не должна сгорать из-за сбоя конвейера
		if releaseErr := h.quota.Release(r.Context(), identity); releaseErr != nil {
			log.Error("failed to release attempt", sl.Err(releaseErr))
		}
		h.metrics.UploadsTotal.WithLabelValues(observability.OutcomeFailed).Inc()
		w.WriteHeader(http.StatusInternalServerError)
		if errors.Is(err, refactorservice.ErrNoOutput) {
			log.Error("pipeline produced no output", sl.Err(err))
			render.JSON(w, r, response.Error("No refactor output"))
			return
		}
		log.Error("pipeline failed", sl.Err(err))
		render.JSON(w, r, response.Error("failed to process archive"))
		return
	}

	log.Info("archive refactored",
		slog.String("identity", identity),
		slog.Int("files", count),
		slog.Int("used", decision.Used))
	h.metrics.UploadsTotal.WithLabelValues(observability.OutcomeAuthorized).Inc()
	h.metrics.RefactoredFilesTotal.Add(float64(count))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="refactored`+ext+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result); err != nil {
		log.Error("failed to write response", sl.Err(err))
	}
}
