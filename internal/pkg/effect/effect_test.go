package effect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedRunner() (*Runner, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewRunner(zap.New(core)), logs
}

func TestGoSwallowsErrors(t *testing.T) {
	r, logs := observedRunner()

	r.Go("broken-effect", func(ctx context.Context) error {
		return errors.New("insert failed")
	})

	// The failure surfaces only as a warning; nothing reaches the caller.
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("effect failed").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGoRecoversPanics(t *testing.T) {
	r, logs := observedRunner()

	r.Go("panicking-effect", func(ctx context.Context) error {
		panic("boom")
	})

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("effect panicked").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGoDoesNotBlockCaller(t *testing.T) {
	r := NewRunner(nil)
	release := make(chan struct{})
	done := make(chan struct{})

	r.Go("slow-effect", func(ctx context.Context) error {
		<-release
		close(done)
		return nil
	})

	// Go returned while the effect is still pending.
	select {
	case <-done:
		t.Fatal("effect completed before the caller was released")
	default:
	}

	close(release)
	<-done
}
