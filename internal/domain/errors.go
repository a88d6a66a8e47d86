package domain

import "errors"

var (
	// ErrPermissionDenied signals that calendar read access or interruption
	// policy access is missing. The engine still computes decisions; only the
	// affected step degrades (no events, or apply deferred).
	ErrPermissionDenied = errors.New("permission denied")
	// ErrSourceUnavailable signals a transient adapter I/O failure. The pass
	// is skipped and the next trigger or timer retries.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrOverrideNotFound is returned when no one-time override is stored.
	ErrOverrideNotFound = errors.New("override not found")
	// ErrInvalidOverride is returned for overrides with an unknown kind or an
	// inverted time window.
	ErrInvalidOverride = errors.New("invalid override")
)
