package decision

import (
	"time"

	"github.com/hushd/hushd/internal/domain"
)

// Engine derives the interruption decision for a single instant from an
// immutable snapshot of filtered events and the optional one-time override.
// Evaluation is pure: inputs are never mutated and there are no failure
// modes. Malformed events are treated as never active instead of erroring,
// so one broken calendar entry cannot take the engine down.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate computes whether DND should be ON at now, and the earliest future
// instant at which that answer could change.
//
// The base predicate is an existential OR over the half-open event windows,
// so overlapping events need no priority ordering and back-to-back events
// yield continuous coverage. An active override replaces the base value
// outright; an expired one is ignored (its deletion from storage is a
// separate idempotent cleanup, not a precondition of evaluation).
func (e *Engine) Evaluate(now time.Time, events []domain.EventInstance, override *domain.OneTimeOverride) domain.Decision {
	baseActive := false
	for _, event := range events {
		if event.Covers(now) {
			baseActive = true
			break
		}
	}

	overrideActive := override.ActiveAt(now)

	active := baseActive
	if overrideActive {
		active = override.ForcesActive()
	}

	return domain.Decision{
		DNDActive:    active,
		NextBoundary: nextBoundary(now, events, override),
	}
}

// nextBoundary returns the minimum over all candidate boundaries strictly
// after now: each event's start and end, and the pending override's start and
// end. Returns nil when no candidate exists; the scheduler then falls back to
// its periodic cadence.
func nextBoundary(now time.Time, events []domain.EventInstance, override *domain.OneTimeOverride) *time.Time {
	var boundary *time.Time

	consider := func(t time.Time) {
		if !t.After(now) {
			return
		}
		if boundary == nil || t.Before(*boundary) {
			c := t
			boundary = &c
		}
	}

	for _, event := range events {
		if event.Malformed() {
			continue
		}
		consider(event.Start)
		consider(event.End)
	}

	if override != nil && !override.ExpiredAt(now) {
		// A not-yet-started override can flip the decision at its start, an
		// active one at its end.
		consider(override.Start)
		consider(override.End)
	}

	return boundary
}
