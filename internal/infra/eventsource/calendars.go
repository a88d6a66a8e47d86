package eventsource

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Calendar is one subscribed ICS feed from the calendars file.
type Calendar struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type calendarsFile struct {
	Calendars []Calendar `yaml:"calendars"`
}

var ErrNoCalendars = errors.New("calendars file lists no calendars")

func LoadCalendars(path string) ([]Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendars file: %w", err)
	}

	var file calendarsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse calendars file: %w", err)
	}

	if len(file.Calendars) == 0 {
		return nil, ErrNoCalendars
	}

	seen := make(map[string]struct{}, len(file.Calendars))
	for i, cal := range file.Calendars {
		if cal.ID == "" {
			return nil, fmt.Errorf("calendar at index %d has no id", i)
		}
		if cal.URL == "" {
			return nil, fmt.Errorf("calendar %q has no url", cal.ID)
		}
		if _, ok := seen[cal.ID]; ok {
			return nil, fmt.Errorf("duplicate calendar id %q", cal.ID)
		}
		seen[cal.ID] = struct{}{}
	}

	return file.Calendars, nil
}
