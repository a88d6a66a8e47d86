package eventsource

import (
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/hushd/hushd/internal/domain"
)

// maxInstancesPerEvent caps recurrence expansion so an unbounded rule cannot
// blow up one pass.
const maxInstancesPerEvent = 1000

// expandInstances turns parsed events into concrete instances intersecting
// [windowStart, windowEnd), expanding recurrence rules and honoring EXDATEs.
func expandInstances(events []parsedEvent, windowStart, windowEnd time.Time) []domain.EventInstance {
	instances := make([]domain.EventInstance, 0, len(events))

	for _, ev := range events {
		if ev.RawRRule == "" {
			if overlaps(ev.Start, ev.End, windowStart, windowEnd) {
				instances = append(instances, domain.EventInstance{
					CalendarID: ev.CalendarID,
					EventID:    ev.UID,
					Start:      ev.Start,
					End:        ev.End,
					Title:      ev.Summary,
				})
			}
			continue
		}

		instances = append(instances, expandRecurring(ev, windowStart, windowEnd)...)
	}

	return instances
}

func expandRecurring(ev parsedEvent, windowStart, windowEnd time.Time) []domain.EventInstance {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		slog.Warn("excluding event with unparseable recurrence rule",
			slog.String("calendar_id", ev.CalendarID),
			slog.String("uid", ev.UID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	duration := ev.End.Sub(ev.Start)

	// Widen the query start by the event duration so an instance already in
	// progress at windowStart is still produced.
	rangeStart := windowStart.Add(-duration).In(ev.Start.Location())
	rangeEnd := windowEnd.In(ev.Start.Location())

	starts := set.Between(rangeStart, rangeEnd, true)
	if len(starts) > maxInstancesPerEvent {
		slog.Warn("recurrence expansion capped",
			slog.String("calendar_id", ev.CalendarID),
			slog.String("uid", ev.UID),
			slog.Int("cap", maxInstancesPerEvent),
		)
		starts = starts[:maxInstancesPerEvent]
	}

	instances := make([]domain.EventInstance, 0, len(starts))
	for _, start := range starts {
		end := start.Add(duration)
		if ev.AllDay {
			day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			start = day
			end = day.Add(24 * time.Hour)
		}
		if !overlaps(start, end, windowStart, windowEnd) {
			continue
		}
		instances = append(instances, domain.EventInstance{
			CalendarID: ev.CalendarID,
			EventID:    ev.UID + "#" + start.UTC().Format(time.RFC3339),
			Start:      start,
			End:        end,
			Title:      ev.Summary,
		})
	}

	return instances
}

// overlaps reports whether [aStart, aEnd) intersects [bStart, bEnd).
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
