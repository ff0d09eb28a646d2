// Package schedule runs a function once immediately and then on a fixed
// interval until it is stopped.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
)

// Func is the unit of recurring work
type Func func(ctx context.Context)

// Task is a cancellable recurring job
type Task struct {
	interval time.Duration
	fn       Func

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a task that runs fn every interval once started
func New(interval time.Duration, fn Func) (*Task, error) {
	if interval <= 0 {
		return nil, errors.InvalidArgumentf("interval must be positive, got %s", interval)
	}
	if fn == nil {
		return nil, errors.InvalidArgument("fn is required")
	}

	return &Task{
		interval: interval,
		fn:       fn,
	}, nil
}

// Start runs fn once and then every interval on a background goroutine.
// The loop ends when ctx is cancelled or Stop is called.
func (t *Task) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return errors.FailedPrecondition("task already started")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.loop(loopCtx, t.done)

	return nil
}

func (t *Task) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	t.fn(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.fn(ctx)
		}
	}
}

// RunNow invokes fn synchronously on the caller's goroutine, whether or not
// the loop is running
func (t *Task) RunNow(ctx context.Context) {
	t.fn(ctx)
}

// Stop cancels the loop and waits for an in-flight run to return.
// Stopping a task that is not running is a no-op.
func (t *Task) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
