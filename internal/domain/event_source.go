package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=event_source.go -destination=event_source_mock.go -package=domain

// EventSource returns calendar event instances overlapping a query window.
// Implementations report ErrPermissionDenied when calendar read access is
// unavailable and ErrSourceUnavailable for transient I/O failure.
type EventSource interface {
	Query(ctx context.Context, windowStart, windowEnd time.Time) ([]EventInstance, error)
}
