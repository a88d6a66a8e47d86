package eventsource

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hushd/hushd/internal/domain"
)

// Source aggregates ICS calendar feeds into one event stream. Per-calendar
// failures degrade individually: a feed that cannot be read right now simply
// contributes no events, and only collective failure is surfaced.
type Source struct {
	calendars []Calendar
	fetcher   *fetcher
}

func New(calendars []Calendar, client *http.Client) *Source {
	return &Source{
		calendars: calendars,
		fetcher:   newFetcher(client),
	}
}

// Calendars lists the subscribed feeds, for the settings API and health
// reporting.
func (s *Source) Calendars() []Calendar {
	out := make([]Calendar, len(s.calendars))
	copy(out, s.calendars)
	return out
}

// Query returns the event instances across all feeds intersecting
// [windowStart, windowEnd). It returns ErrPermissionDenied when every feed
// denied access, and ErrSourceUnavailable when no feed produced data at all.
func (s *Source) Query(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.EventInstance, error) {
	var (
		instances []domain.EventInstance
		denied    int
		failed    int
		fetched   int
	)

	for _, cal := range s.calendars {
		body, fromCache, err := s.fetcher.fetch(ctx, cal)
		switch {
		case errors.Is(err, domain.ErrPermissionDenied):
			denied++
			slog.WarnContext(ctx, "calendar access denied",
				slog.String("calendar_id", cal.ID),
			)
			continue
		case err != nil:
			failed++
			slog.WarnContext(ctx, "calendar unavailable",
				slog.String("calendar_id", cal.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		fetched++

		events, err := parseCalendarBody(cal.ID, body)
		if err != nil {
			failed++
			fetched--
			slog.WarnContext(ctx, "calendar body unparseable",
				slog.String("calendar_id", cal.ID),
				slog.Bool("from_cache", fromCache),
				slog.String("error", err.Error()),
			)
			continue
		}

		instances = append(instances, expandInstances(events, windowStart, windowEnd)...)
	}

	if len(s.calendars) > 0 && denied == len(s.calendars) {
		return nil, domain.ErrPermissionDenied
	}
	if len(s.calendars) > 0 && fetched == 0 && failed > 0 {
		return nil, domain.ErrSourceUnavailable
	}

	return instances, nil
}
