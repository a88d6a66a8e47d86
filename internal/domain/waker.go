package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=waker.go -destination=waker_mock.go -package=domain

// Waker arms the one-shot wake-up for the next decision boundary. Arm
// atomically replaces any previously armed wake-up; duplicate timers must
// never accumulate. Stop releases the pending wake-up, if any.
type Waker interface {
	Arm(ctx context.Context, at time.Time) error
	Stop()
}
