package domain

import (
	"testing"
	"time"
)

func TestEventInstanceCovers(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	event := EventInstance{CalendarID: "work", EventID: "e1", Start: start, End: end}

	tests := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{name: "before start", at: start.Add(-time.Minute), expected: false},
		{name: "at start is covered", at: start, expected: true},
		{name: "mid window", at: start.Add(30 * time.Minute), expected: true},
		{name: "end is excluded", at: end, expected: false},
		{name: "after end", at: end.Add(time.Minute), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := event.Covers(tt.at); got != tt.expected {
				t.Errorf("Covers(%v): got %v, want %v", tt.at, got, tt.expected)
			}
		})
	}
}

func TestEventInstanceMalformed(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	inverted := EventInstance{Start: start, End: start.Add(-time.Hour)}
	if !inverted.Malformed() {
		t.Error("inverted window should be malformed")
	}
	if inverted.Covers(start) {
		t.Error("malformed event must never cover an instant")
	}
	if inverted.Duration() != 0 {
		t.Errorf("malformed event duration: got %v, want 0", inverted.Duration())
	}

	zeroLength := EventInstance{Start: start, End: start}
	if zeroLength.Malformed() {
		t.Error("zero-length window is valid, not malformed")
	}
	if zeroLength.Covers(start) {
		t.Error("zero-length half-open window covers nothing")
	}
}

func TestCalendarScopeIncludes(t *testing.T) {
	tests := []struct {
		name       string
		scope      CalendarScope
		calendarID string
		expected   bool
	}{
		{name: "all calendars includes anything", scope: AllCalendars(), calendarID: "personal", expected: true},
		{name: "selected includes member", scope: SelectedCalendars("work", "team"), calendarID: "team", expected: true},
		{name: "selected excludes non-member", scope: SelectedCalendars("work"), calendarID: "personal", expected: false},
		{name: "empty selection matches nothing", scope: SelectedCalendars(), calendarID: "work", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.Includes(tt.calendarID); got != tt.expected {
				t.Errorf("Includes(%q): got %v, want %v", tt.calendarID, got, tt.expected)
			}
		})
	}
}

func TestWeekdayMaskBits(t *testing.T) {
	var m WeekdayMask

	m = m.With(time.Monday).With(time.Friday)
	if !m.Has(time.Monday) || !m.Has(time.Friday) {
		t.Error("set days should be present")
	}
	if m.Has(time.Sunday) {
		t.Error("unset day should be absent")
	}
	if m.Count() != 2 {
		t.Errorf("Count: got %d, want 2", m.Count())
	}

	m = m.Without(time.Monday)
	if m.Has(time.Monday) {
		t.Error("cleared day should be absent")
	}

	if AllWeekdays.Count() != 7 {
		t.Errorf("AllWeekdays count: got %d, want 7", AllWeekdays.Count())
	}

	days := WeekdayMask(0).With(time.Saturday).With(time.Sunday).Days()
	if len(days) != 2 || days[0] != time.Sunday || days[1] != time.Saturday {
		t.Errorf("Days order: got %v, want [Sunday Saturday]", days)
	}
}

func TestOneTimeOverrideWindow(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	override := &OneTimeOverride{
		Kind:       OverrideSkipEvent,
		CalendarID: "work",
		EventID:    "e1",
		Start:      start,
		End:        end,
	}

	if !override.ActiveAt(start) {
		t.Error("override should be active at its start")
	}
	if override.ActiveAt(end) {
		t.Error("override end is excluded from the active window")
	}
	if !override.ExpiredAt(end) {
		t.Error("override is expired at exactly its end")
	}
	if override.ForcesActive() {
		t.Error("skip override must not force DND on")
	}

	var nilOverride *OneTimeOverride
	if nilOverride.ActiveAt(start) || nilOverride.ExpiredAt(end) || nilOverride.ForcesActive() {
		t.Error("nil override is inert")
	}
}
