// Package sweeper периодически переводит зависшие платежные сессии в expired.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
)

// CheckoutService описывает операцию очистки зависших сессий.
type CheckoutService interface {
	ExpireStale(ctx context.Context) (int, error)
}

// Sweeper фоновая задача очистки.
type Sweeper struct {
	log      *slog.Logger
	service  CheckoutService
	interval time.Duration
}

// New создает Sweeper с заданным интервалом обхода.
func New(log *slog.Logger, service CheckoutService, interval time.Duration) *Sweeper {
	return &Sweeper{
		log:      log,
		service:  service,
		interval: interval,
	}
}

// Run выполняет очистку сразу и далее по тикеру, пока контекст жив.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.service.ExpireStale(ctx)
	if err != nil {
		s.log.Error("failed to expire stale sessions", sl.Err(err))
		return
	}
	if expired > 0 {
		s.log.Info("expired stale checkout sessions", slog.Int("count", expired))
	}
}
