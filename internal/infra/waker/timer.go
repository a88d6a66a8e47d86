//go:build !gcloud

package waker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Timer is the in-process wake-up backend. Arming replaces any previously
// armed wake-up atomically, so exactly one future fire exists at a time.
type Timer struct {
	fire func()
	now  func() time.Time

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewTimer returns a waker that invokes fire when the armed time arrives.
// The callback runs on a timer goroutine and must not block for long.
func NewTimer(fire func()) *Timer {
	return &Timer{
		fire: fire,
		now:  time.Now,
	}
}

func (w *Timer) Arm(ctx context.Context, at time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	if w.timer != nil {
		w.timer.Stop()
	}

	delay := at.Sub(w.now())
	if delay < 0 {
		delay = 0
	}

	w.timer = time.AfterFunc(delay, w.fire)

	slog.DebugContext(ctx, "timer waker armed",
		slog.Time("at", at),
		slog.Duration("delay", delay),
	)
	return nil
}

func (w *Timer) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
