package domain

import (
	"time"
)

// EventInstance is one concrete occurrence of a calendar event inside a query
// window. Instances are snapshots: the engine never mutates or persists them.
type EventInstance struct {
	CalendarID string
	EventID    string
	Start      time.Time
	End        time.Time
	Title      string
}

// Malformed reports whether the instance violates the Start <= End invariant.
// Malformed instances are excluded from decisions instead of failing the pass;
// a single broken calendar entry must not disable the engine.
func (e EventInstance) Malformed() bool {
	return e.End.Before(e.Start)
}

// Covers reports whether t falls inside the half-open window [Start, End).
// Back-to-back events therefore produce continuous coverage with no gap at
// the shared boundary instant.
func (e EventInstance) Covers(t time.Time) bool {
	if e.Malformed() {
		return false
	}
	return !t.Before(e.Start) && t.Before(e.End)
}

// Duration returns the length of the instance window, zero if malformed.
func (e EventInstance) Duration() time.Duration {
	if e.Malformed() {
		return 0
	}
	return e.End.Sub(e.Start)
}
