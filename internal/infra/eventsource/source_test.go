package eventsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hushd/hushd/internal/domain"
)

func icsBody(lines ...string) string {
	all := append([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//hushd//test//EN",
	}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

func TestParseCalendarBody(t *testing.T) {
	body := icsBody(
		"BEGIN:VEVENT",
		"UID:meeting-1",
		"SUMMARY:Design Review",
		"DTSTART:20240304T140000Z",
		"DTEND:20240304T150000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"SUMMARY:No UID here",
		"DTSTART:20240304T160000Z",
		"DTEND:20240304T170000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:inverted",
		"DTSTART:20240304T180000Z",
		"DTEND:20240304T170000Z",
		"END:VEVENT",
	)

	events, err := parseCalendarBody("work", []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The UID-less and inverted events are excluded, the valid one survives.
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.UID != "meeting-1" {
		t.Errorf("expected UID meeting-1, got %s", ev.UID)
	}
	if ev.Summary != "Design Review" {
		t.Errorf("expected summary Design Review, got %s", ev.Summary)
	}
	if ev.CalendarID != "work" {
		t.Errorf("expected calendar work, got %s", ev.CalendarID)
	}
	want := time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)
	if !ev.Start.Equal(want) {
		t.Errorf("expected start %v, got %v", want, ev.Start)
	}
}

func TestParseCalendarBodyError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "not a calendar", body: "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseCalendarBody("work", []byte(tt.body)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestExpandInstancesNonRecurring(t *testing.T) {
	windowStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(24 * time.Hour)

	events := []parsedEvent{
		{
			CalendarID: "work",
			UID:        "inside",
			Start:      windowStart.Add(9 * time.Hour),
			End:        windowStart.Add(10 * time.Hour),
		},
		{
			CalendarID: "work",
			UID:        "before-window",
			Start:      windowStart.Add(-2 * time.Hour),
			End:        windowStart.Add(-time.Hour),
		},
		{
			CalendarID: "work",
			UID:        "in-progress-at-window-start",
			Start:      windowStart.Add(-time.Hour),
			End:        windowStart.Add(time.Hour),
		},
	}

	instances := expandInstances(events, windowStart, windowEnd)
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(instances))
	}
	ids := map[string]bool{}
	for _, inst := range instances {
		ids[inst.EventID] = true
	}
	if !ids["inside"] || !ids["in-progress-at-window-start"] {
		t.Errorf("unexpected instance set: %v", ids)
	}
}

func TestExpandInstancesRecurring(t *testing.T) {
	body := icsBody(
		"BEGIN:VEVENT",
		"UID:standup",
		"SUMMARY:Daily Standup",
		"DTSTART:20240304T090000Z",
		"DTEND:20240304T091500Z",
		"RRULE:FREQ=DAILY;COUNT=10",
		"EXDATE:20240305T090000Z",
		"END:VEVENT",
	)

	events, err := parseCalendarBody("work", []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	windowStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(3 * 24 * time.Hour)

	instances := expandInstances(events, windowStart, windowEnd)

	// March 4 through 6 minus the excluded March 5.
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(instances))
	}
	for _, inst := range instances {
		if inst.Start.Day() == 5 {
			t.Errorf("EXDATE instance leaked: %v", inst.Start)
		}
		if got := inst.End.Sub(inst.Start); got != 15*time.Minute {
			t.Errorf("expected 15m duration, got %v", got)
		}
		if !strings.HasPrefix(inst.EventID, "standup#") {
			t.Errorf("expected per-instance event ID, got %s", inst.EventID)
		}
	}
}

func TestQuerySuccess(t *testing.T) {
	body := icsBody(
		"BEGIN:VEVENT",
		"UID:meeting-1",
		"SUMMARY:Design Review",
		"DTSTART:20240304T140000Z",
		"DTEND:20240304T150000Z",
		"END:VEVENT",
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	source := New([]Calendar{{ID: "work", URL: server.URL}}, server.Client())

	windowStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	instances, err := source.Query(context.Background(), windowStart, windowStart.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(instances))
	}
	if instances[0].CalendarID != "work" {
		t.Errorf("expected calendar work, got %s", instances[0].CalendarID)
	}
}

func TestQueryAllDeniedReturnsPermissionDenied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	source := New([]Calendar{
		{ID: "work", URL: server.URL},
		{ID: "family", URL: server.URL},
	}, server.Client())

	_, err := source.Query(context.Background(), time.Now(), time.Now().Add(time.Hour))
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestQueryAllFailedReturnsSourceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := New([]Calendar{{ID: "work", URL: server.URL}}, server.Client())

	_, err := source.Query(context.Background(), time.Now(), time.Now().Add(time.Hour))
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestQueryFallsBackToCachedBody(t *testing.T) {
	body := icsBody(
		"BEGIN:VEVENT",
		"UID:meeting-1",
		"DTSTART:20240304T140000Z",
		"DTEND:20240304T150000Z",
		"END:VEVENT",
	)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	source := New([]Calendar{{ID: "work", URL: server.URL}}, server.Client())

	windowStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(24 * time.Hour)

	if _, err := source.Query(context.Background(), windowStart, windowEnd); err != nil {
		t.Fatalf("first query failed: %v", err)
	}

	// Second query hits the failing server but serves the cached feed.
	instances, err := source.Query(context.Background(), windowStart, windowEnd)
	if err != nil {
		t.Fatalf("expected cached fallback, got error: %v", err)
	}
	if len(instances) != 1 {
		t.Fatalf("expected 1 instance from cache, got %d", len(instances))
	}
}

func TestQueryDeniedFeedDropsCache(t *testing.T) {
	body := icsBody(
		"BEGIN:VEVENT",
		"UID:meeting-1",
		"DTSTART:20240304T140000Z",
		"DTEND:20240304T150000Z",
		"END:VEVENT",
	)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	source := New([]Calendar{{ID: "work", URL: server.URL}}, server.Client())

	windowStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(24 * time.Hour)

	if _, err := source.Query(context.Background(), windowStart, windowEnd); err != nil {
		t.Fatalf("first query failed: %v", err)
	}

	// Revoked access must not serve stale events from cache.
	_, err := source.Query(context.Background(), windowStart, windowEnd)
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestLoadCalendars(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr bool
		wantLen int
	}{
		{
			name: "valid file",
			content: `calendars:
  - id: work
    name: Work
    url: https://example.com/work.ics
  - id: family
    url: https://example.com/family.ics
`,
			wantLen: 2,
		},
		{
			name:    "no calendars",
			content: "calendars: []\n",
			wantErr: true,
		},
		{
			name: "missing url",
			content: `calendars:
  - id: work
`,
			wantErr: true,
		},
		{
			name: "duplicate id",
			content: `calendars:
  - id: work
    url: https://example.com/a.ics
  - id: work
    url: https://example.com/b.ics
`,
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			content: "calendars: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			calendars, err := LoadCalendars(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(calendars) != tt.wantLen {
				t.Errorf("expected %d calendars, got %d", tt.wantLen, len(calendars))
			}
		})
	}
}
