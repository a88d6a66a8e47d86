package eventsource

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// parsedEvent is a normalized VEVENT before recurrence expansion.
type parsedEvent struct {
	CalendarID string
	UID        string
	Summary    string
	Start      time.Time
	End        time.Time
	AllDay     bool
	RawRRule   string
	ExDates    []time.Time
}

// parseCalendarBody parses one ICS payload. Malformed VEVENTs are excluded
// with a warning; the rest of the feed still contributes events.
func parseCalendarBody(calendarID string, body []byte) ([]parsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty calendar body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]parsedEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(calendarID, ve)
		if perr != nil {
			slog.Warn("excluding malformed calendar event",
				slog.String("calendar_id", calendarID),
				slog.String("error", perr.Error()),
			)
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(calendarID string, ve *ical.VEvent) (parsedEvent, error) {
	out := parsedEvent{CalendarID: calendarID}

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	// Detached occurrences of a recurring series carry RECURRENCE-ID; the
	// base series already yields an instance for that slot.
	if ve.GetProperty("RECURRENCE-ID") != nil {
		return out, errors.New("recurrence override instances are not supported")
	}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, errors.New("missing or invalid DTSTART")
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return out, errors.New("missing or invalid DTEND")
	}
	out.Start = start
	out.End = end

	if out.End.Before(out.Start) {
		return out, errors.New("event ends before it starts")
	}

	if dtStartProp := ve.GetProperty(ical.ComponentPropertyDtStart); dtStartProp != nil {
		out.AllDay = isDateOnly(dtStartProp)
	}

	if rruleProp := ve.GetProperty(ical.ComponentPropertyRrule); rruleProp != nil {
		out.RawRRule = rruleProp.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, perr := parseICSTime(part); perr == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, nil
}

func isDateOnly(prop *ical.IANAProperty) bool {
	if params := prop.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(prop.Value, "T")
}

func parseICSTime(v string) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}
