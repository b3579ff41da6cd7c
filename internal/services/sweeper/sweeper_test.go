package sweeper

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingService struct {
	calls atomic.Int32
}

func (c *countingService) ExpireStale(_ context.Context) (int, error) {
	c.calls.Add(1)
	return 1, nil
}

func TestRun_SweepsUntilCanceled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	service := &countingService{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		New(logger, service, 10*time.Millisecond).Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return service.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancel")
	}
}
