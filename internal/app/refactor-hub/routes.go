package refactorhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/refactor-hub/internal/config"
	"github.com/magabrotheeeer/refactor-hub/internal/http/handlers/checkoutcreate"
	"github.com/magabrotheeeer/refactor-hub/internal/http/handlers/checkoutredirect"
	"github.com/magabrotheeeer/refactor-hub/internal/http/handlers/health"
	"github.com/magabrotheeeer/refactor-hub/internal/http/handlers/pages"
	"github.com/magabrotheeeer/refactor-hub/internal/http/handlers/upload"
	"github.com/magabrotheeeer/refactor-hub/internal/http/handlers/usage"
	"github.com/magabrotheeeer/refactor-hub/internal/http/handlers/webhook"
	"github.com/magabrotheeeer/refactor-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/refactor-hub/internal/observability"
	checkoutservice "github.com/magabrotheeeer/refactor-hub/internal/services/checkout"
	quotaservice "github.com/magabrotheeeer/refactor-hub/internal/services/quota"
	refactorservice "github.com/magabrotheeeer/refactor-hub/internal/services/refactor"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	quotaService *quotaservice.Service, checkoutService *checkoutservice.Service,
	pipeline *refactorservice.Service, metrics *observability.Metrics) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Группа с обязательным заголовком User-ID
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.IdentityMiddleware(logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/upload", upload.New(logger, quotaService, checkoutService, pipeline, metrics, cfg.MaxSizeBytes).ServeHTTP)
		r.Get("/usage", usage.New(logger, quotaService).ServeHTTP)
	})

	// Конечные точки оплаты (идентификатор передается в теле или query)
	r.Post("/create-checkout-session", checkoutcreate.New(logger, checkoutService, metrics).ServeHTTP)
	r.Get("/checkout", checkoutredirect.New(logger, checkoutService).ServeHTTP)

	// Страницы возврата после оплаты
	pagesHandler := pages.New(logger)
	r.Get("/success", pagesHandler.Success)
	r.Get("/cancel", pagesHandler.Cancel)

	// Webhook endpoint (без проверки User-ID, подпись в заголовке)
	r.Post("/webhook", webhook.New(logger, checkoutService, metrics, cfg.WebhookSecret).ServeHTTP)

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
