package scope

import (
	"github.com/hushd/hushd/internal/domain"
)

// Resolver filters event instances down to the calendars the user selected.
// It is a pure filter with no side effects.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the events whose owning calendar is in scope. AllCalendars
// returns the input unchanged. An explicit selection with no calendars chosen
// yields an empty result, which fails safe toward DND staying OFF.
func (r *Resolver) Resolve(events []domain.EventInstance, scope domain.CalendarScope) []domain.EventInstance {
	if scope.All {
		return events
	}

	resolved := make([]domain.EventInstance, 0, len(events))
	for _, event := range events {
		if scope.Includes(event.CalendarID) {
			resolved = append(resolved, event)
		}
	}
	return resolved
}
