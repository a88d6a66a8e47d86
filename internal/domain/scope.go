package domain

// CalendarScope controls which calendars are eligible to drive the
// interruption state. It is either "all calendars" or an explicit allow-set
// of calendar identifiers.
type CalendarScope struct {
	All         bool
	CalendarIDs []string
}

func AllCalendars() CalendarScope {
	return CalendarScope{All: true}
}

func SelectedCalendars(ids ...string) CalendarScope {
	return CalendarScope{CalendarIDs: ids}
}

// Includes reports whether events from the given calendar are in scope.
// An explicit selection with no calendars chosen matches nothing, so the
// decision fails safe toward OFF.
func (s CalendarScope) Includes(calendarID string) bool {
	if s.All {
		return true
	}
	for _, id := range s.CalendarIDs {
		if id == calendarID {
			return true
		}
	}
	return false
}
