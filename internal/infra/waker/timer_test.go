//go:build !gcloud

package waker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerArmFires(t *testing.T) {
	var fired atomic.Int32
	w := NewTimer(func() { fired.Add(1) })
	defer w.Stop()

	if err := w.Arm(context.Background(), time.Now().Add(10*time.Millisecond)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitFor(t, func() bool { return fired.Load() == 1 })
}

func TestTimerArmInPastFiresImmediately(t *testing.T) {
	var fired atomic.Int32
	w := NewTimer(func() { fired.Add(1) })
	defer w.Stop()

	if err := w.Arm(context.Background(), time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitFor(t, func() bool { return fired.Load() == 1 })
}

func TestTimerRearmReplacesPrior(t *testing.T) {
	var fired atomic.Int32
	w := NewTimer(func() { fired.Add(1) })
	defer w.Stop()

	// The first arm is far in the future and must be replaced, not added.
	if err := w.Arm(context.Background(), time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Arm(context.Background(), time.Now().Add(10*time.Millisecond)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitFor(t, func() bool { return fired.Load() == 1 })

	// Give the replaced timer a chance to misfire.
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly 1 fire, got %d", got)
	}
}

func TestTimerStopCancelsArmed(t *testing.T) {
	var fired atomic.Int32
	w := NewTimer(func() { fired.Add(1) })

	if err := w.Arm(context.Background(), time.Now().Add(20*time.Millisecond)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected no fires after stop, got %d", got)
	}

	// Arming after stop is inert.
	if err := w.Arm(context.Background(), time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected no fires after stop, got %d", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never satisfied")
}
