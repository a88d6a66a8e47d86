package domain

import "time"

// Decision is the output of one evaluation pass: whether DND should be ON
// right now, and the earliest future instant at which that answer could
// change. NextBoundary is nil only when nothing inside the lookahead window
// and no pending override could flip the state; the scheduler then falls back
// to its default periodic cadence.
type Decision struct {
	DNDActive    bool
	NextBoundary *time.Time
}

func (d Decision) HasBoundary() bool {
	return d.NextBoundary != nil
}

// EvaluationRecord captures the telemetry of one evaluation pass for the
// decision recorder.
type EvaluationRecord struct {
	RunID             string
	Trigger           Trigger
	EvaluatedAt       time.Time
	DNDActive         bool
	Applied           bool
	PendingPermission bool
	NextBoundary      *time.Time
	EventCount        int
	FilteredCount     int
	OverrideActive    bool
	Duration          time.Duration
}
