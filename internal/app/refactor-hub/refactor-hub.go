// Package refactorhub собирает и запускает основное приложение:
// хранилище, кэш, брокер, сервисы и HTTP-сервер.
package refactorhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/refactor-hub/internal/cache"
	"github.com/magabrotheeeer/refactor-hub/internal/config"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/refactor-hub/internal/migrations"
	"github.com/magabrotheeeer/refactor-hub/internal/observability"
	"github.com/magabrotheeeer/refactor-hub/internal/paymentprovider"
	"github.com/magabrotheeeer/refactor-hub/internal/refactorer"
	checkoutservice "github.com/magabrotheeeer/refactor-hub/internal/services/checkout"
	quotaservice "github.com/magabrotheeeer/refactor-hub/internal/services/quota"
	refactorservice "github.com/magabrotheeeer/refactor-hub/internal/services/refactor"
	"github.com/magabrotheeeer/refactor-hub/internal/services/sweeper"
	"github.com/magabrotheeeer/refactor-hub/internal/storage/memory"
	"github.com/magabrotheeeer/refactor-hub/internal/storage/repository"
)

// Store объединяет требования сервисов квот и платежных сессий к
// хранилищу. Его реализуют и postgres, и память для локального запуска.
type Store interface {
	quotaservice.Repository
	checkoutservice.Repository
}

// App основное приложение сервиса.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *repository.Storage // nil при хранилище в памяти
	amqp    *amqp.Connection    // nil, когда брокер не настроен
	sweeper *sweeper.Sweeper
}

// New собирает приложение из конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var store Store
	var db *repository.Storage

	if cfg.StorageConnectionString == "" {
		logger.Info("storage connection string is empty, using in-memory store")
		store = memory.New()
	} else {
		var err error
		db, err = repository.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, "./migrations"); err != nil {
			return nil, err
		}
		store = db
	}

	var quotaCache quotaservice.Cache
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		quotaCache = cacheRedis
	}

	var amqpConn *amqp.Connection
	var channel *amqp.Channel
	if cfg.AMQPConnectionString != "" {
		var err error
		amqpConn, err = rabbitmq.Connect(cfg.AMQPConnectionString, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		channel, err = rabbitmq.SetupChannel(amqpConn, rabbitmq.GetBillingQueues())
		if err != nil {
			return nil, err
		}
	}

	quotaService := quotaservice.New(store, quotaCache, logger, cfg.FreeLimit)
	providerClient := paymentprovider.NewClient(cfg.SecretKey, cfg.APIURLProvider)
	checkoutService := checkoutservice.New(logger, store, providerClient, quotaService, channel, cfg.Checkout)
	refactorerClient := refactorer.New(cfg.Refactorer)
	pipeline := refactorservice.New(logger, refactorerClient, refactorservice.NopScanner{}, cfg.MemoSize, cfg.MemoTTL)
	metrics := observability.New(prometheus.DefaultRegisterer)
	sessionSweeper := sweeper.New(logger, checkoutService, cfg.SweepInterval)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, quotaService, checkoutService, pipeline, metrics)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		db:      db,
		amqp:    amqpConn,
		sweeper: sessionSweeper,
	}, nil
}

// Run запускает HTTP-сервер и фоновую уборку просроченных сессий,
// останавливая их по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	go a.sweeper.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.db != nil {
			a.db.DB.Close()
		}
		if a.amqp != nil {
			a.amqp.Close()
		}
		return err
	}
}
