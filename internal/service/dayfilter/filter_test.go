package dayfilter

import (
	"testing"
	"time"

	"github.com/hushd/hushd/internal/domain"
)

func TestApply(t *testing.T) {
	// 2024-03-04 is a Monday, 2024-03-05 a Tuesday.
	monday := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	events := []domain.EventInstance{
		{CalendarID: "work", EventID: "mon", Start: monday, End: monday.Add(time.Hour)},
		{CalendarID: "work", EventID: "tue", Start: tuesday, End: tuesday.Add(time.Hour)},
	}

	tests := []struct {
		name        string
		setting     domain.WeekdaySetting
		expectedIDs []string
	}{
		{
			name:        "disabled filter is identity",
			setting:     domain.WeekdaySetting{Enabled: false, Mask: 0},
			expectedIDs: []string{"mon", "tue"},
		},
		{
			name:        "monday only drops tuesday event entirely",
			setting:     domain.WeekdaySetting{Enabled: true, Mask: domain.WeekdayMask(0).With(time.Monday)},
			expectedIDs: []string{"mon"},
		},
		{
			name:        "all days pass everything",
			setting:     domain.WeekdaySetting{Enabled: true, Mask: domain.AllWeekdays},
			expectedIDs: []string{"mon", "tue"},
		},
		{
			name:        "all-zero mask passes nothing",
			setting:     domain.WeekdaySetting{Enabled: true, Mask: 0},
			expectedIDs: []string{},
		},
	}

	filter := NewFilter(time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := filter.Apply(events, tt.setting)

			if len(filtered) != len(tt.expectedIDs) {
				t.Fatalf("got %d events, want %d", len(filtered), len(tt.expectedIDs))
			}
			for i, event := range filtered {
				if event.EventID != tt.expectedIDs[i] {
					t.Errorf("event[%d]: got %q, want %q", i, event.EventID, tt.expectedIDs[i])
				}
			}
		})
	}
}

func TestApplyUsesStartDayOnly(t *testing.T) {
	// Event starts Monday 23:30 and ends Tuesday 00:30. With only Monday
	// enabled it passes, and its full window is kept (no truncation).
	start := time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 30, 0, 0, time.UTC)
	events := []domain.EventInstance{
		{CalendarID: "work", EventID: "overnight", Start: start, End: end},
	}

	filter := NewFilter(time.UTC)
	setting := domain.WeekdaySetting{Enabled: true, Mask: domain.WeekdayMask(0).With(time.Monday)}

	filtered := filter.Apply(events, setting)
	if len(filtered) != 1 {
		t.Fatalf("got %d events, want 1", len(filtered))
	}
	if !filtered[0].End.Equal(end) {
		t.Errorf("event window truncated: got end %v, want %v", filtered[0].End, end)
	}

	// With only Tuesday enabled the same event is dropped even though it
	// overlaps Tuesday.
	setting.Mask = domain.WeekdayMask(0).With(time.Tuesday)
	if filtered := filter.Apply(events, setting); len(filtered) != 0 {
		t.Errorf("got %d events, want 0", len(filtered))
	}
}

func TestApplyHonorsLocation(t *testing.T) {
	// 2024-03-04 23:30 UTC is already Tuesday in Asia/Tokyo (+9).
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	start := time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC)
	events := []domain.EventInstance{
		{CalendarID: "work", EventID: "e1", Start: start, End: start.Add(time.Hour)},
	}
	setting := domain.WeekdaySetting{Enabled: true, Mask: domain.WeekdayMask(0).With(time.Tuesday)}

	if filtered := NewFilter(time.UTC).Apply(events, setting); len(filtered) != 0 {
		t.Errorf("UTC filter: got %d events, want 0", len(filtered))
	}
	if filtered := NewFilter(tokyo).Apply(events, setting); len(filtered) != 1 {
		t.Errorf("Tokyo filter: got %d events, want 1", len(filtered))
	}
}
