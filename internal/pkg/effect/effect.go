// Package effect is the single boundary where best-effort side effects
// are detached from the request that triggers them. An effect's failure
// is logged and discarded; it can never change the status or body of
// the primary response.
package effect

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Runner launches fire-and-forget effects.
type Runner struct {
	logger *zap.Logger
}

func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Go runs fn on its own goroutine with a detached context. Panics are
// recovered and errors logged at Warn; nothing propagates to the caller.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Warn("effect panicked", zap.String("effect", name), zap.Any("panic", rec))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			r.logger.Warn("effect failed", zap.String("effect", name), zap.Error(err))
		}
	}()
}
