package domain

import "time"

// OverrideKind distinguishes the two one-time override shapes.
type OverrideKind string

const (
	// OverrideEnableForEvent forces DND ON across the override window,
	// regardless of scope and day filters.
	OverrideEnableForEvent OverrideKind = "enable_for_event"
	// OverrideSkipEvent forces DND OFF across the override window even if a
	// filtered event covers it.
	OverrideSkipEvent OverrideKind = "skip_event"
)

func (k OverrideKind) Valid() bool {
	return k == OverrideEnableForEvent || k == OverrideSkipEvent
}

func (k OverrideKind) String() string {
	return string(k)
}

// OneTimeOverride is a user-issued, time-bounded exception keyed to one
// specific event occurrence. At most one override exists at a time; saving a
// new one replaces any prior one. The override carries its own [Start, End)
// window and applies by that window even if the referenced event has since
// been deleted or moved.
type OneTimeOverride struct {
	Kind       OverrideKind
	CalendarID string
	EventID    string
	Start      time.Time
	End        time.Time
	CreatedAt  time.Time
}

func NewOneTimeOverride(kind OverrideKind, event EventInstance) *OneTimeOverride {
	return &OneTimeOverride{
		Kind:       kind,
		CalendarID: event.CalendarID,
		EventID:    event.EventID,
		Start:      event.Start,
		End:        event.End,
		CreatedAt:  time.Now().UTC(),
	}
}

// ActiveAt reports whether the override window covers t (half-open).
func (o *OneTimeOverride) ActiveAt(t time.Time) bool {
	if o == nil {
		return false
	}
	return !t.Before(o.Start) && t.Before(o.End)
}

// ExpiredAt reports whether the override is past its end at t. Expired
// overrides are ignored for decisions; their deletion from storage is a
// separate idempotent cleanup step.
func (o *OneTimeOverride) ExpiredAt(t time.Time) bool {
	if o == nil {
		return false
	}
	return !t.Before(o.End)
}

// ForcesActive returns the DND value the override imposes while active.
func (o *OneTimeOverride) ForcesActive() bool {
	return o != nil && o.Kind == OverrideEnableForEvent
}
