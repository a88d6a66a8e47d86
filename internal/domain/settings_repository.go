package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=settings_repository.go -destination=settings_repository_mock.go -package=domain

// SettingsChangeKind identifies which setting a change notification concerns.
type SettingsChangeKind string

const (
	SettingsChangeScope    SettingsChangeKind = "scope"
	SettingsChangeWeekdays SettingsChangeKind = "weekdays"
	SettingsChangeOverride SettingsChangeKind = "override"
)

// SettingsChange is one change-notification event emitted after a write.
type SettingsChange struct {
	Kind SettingsChangeKind
	At   time.Time
}

// SettingsRepository holds the user-configured calendar scope, weekday
// setting and the at-most-one one-time override. Reads return defaults when
// nothing is stored (AllCalendars, disabled weekday filter, no override).
// Every successful write is published on the Watch stream so the scheduler
// re-evaluates promptly instead of waiting for the armed boundary.
type SettingsRepository interface {
	GetScope(ctx context.Context) (CalendarScope, error)
	SaveScope(ctx context.Context, scope CalendarScope) error

	GetWeekdaySetting(ctx context.Context) (WeekdaySetting, error)
	SaveWeekdaySetting(ctx context.Context, setting WeekdaySetting) error

	// GetOverride returns ErrOverrideNotFound when no override is stored.
	GetOverride(ctx context.Context) (*OneTimeOverride, error)
	// SaveOverride replaces any prior override.
	SaveOverride(ctx context.Context, override *OneTimeOverride) error
	// ClearOverride is idempotent; clearing an absent override is not an error.
	ClearOverride(ctx context.Context) error

	// Watch delivers change notifications until ctx is cancelled. The channel
	// is closed on cancellation.
	Watch(ctx context.Context) (<-chan SettingsChange, error)
}
