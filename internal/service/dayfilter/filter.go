package dayfilter

import (
	"time"

	"github.com/hushd/hushd/internal/domain"
)

// Filter suppresses events whose start day-of-week is not enabled in the
// weekday mask. The day is derived from the event's start instant in the
// configured location; an event starting just before midnight and running
// past it is filtered on its start day only and, once it passes, honored for
// its full window.
type Filter struct {
	location *time.Location
}

func NewFilter(location *time.Location) *Filter {
	if location == nil {
		location = time.Local
	}
	return &Filter{location: location}
}

// Apply returns the events that pass the weekday filter. A disabled setting
// is the identity. An all-zero mask with the filter enabled passes nothing;
// the UI prevents that state but the engine tolerates it.
func (f *Filter) Apply(events []domain.EventInstance, setting domain.WeekdaySetting) []domain.EventInstance {
	if !setting.Enabled {
		return events
	}

	filtered := make([]domain.EventInstance, 0, len(events))
	for _, event := range events {
		day := event.Start.In(f.location).Weekday()
		if setting.Mask.Has(day) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}
