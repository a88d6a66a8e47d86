package domain

import "time"

// WeekdayMask is a 7-bit set of enabled weekdays. Bit order is fixed and
// locale-independent: Sunday = bit 0 through Saturday = bit 6, matching
// time.Weekday numbering. Only the display order of days is a locale concern,
// and that lives entirely in UI layers.
type WeekdayMask uint8

const AllWeekdays WeekdayMask = 0x7F

func (m WeekdayMask) Has(d time.Weekday) bool {
	return m&(1<<uint(d)) != 0
}

func (m WeekdayMask) With(d time.Weekday) WeekdayMask {
	return m | (1 << uint(d))
}

func (m WeekdayMask) Without(d time.Weekday) WeekdayMask {
	return m &^ (1 << uint(d))
}

// Count returns the number of enabled days.
func (m WeekdayMask) Count() int {
	n := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if m.Has(d) {
			n++
		}
	}
	return n
}

// Days returns the enabled days in storage order (Sunday first).
func (m WeekdayMask) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if m.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// WeekdaySetting pairs the mask with its enabled flag. When Enabled is false
// the mask is never interpreted and every event passes the day filter. The UI
// refuses to clear the last set bit, but the engine still tolerates an
// all-zero mask and treats it as "no events pass".
type WeekdaySetting struct {
	Enabled bool
	Mask    WeekdayMask
}

func DefaultWeekdaySetting() WeekdaySetting {
	return WeekdaySetting{Enabled: false, Mask: AllWeekdays}
}
