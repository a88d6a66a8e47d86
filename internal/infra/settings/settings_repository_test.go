package settings

import (
	"context"
	"testing"
	"time"

	"github.com/hushd/hushd/internal/domain"
	"github.com/hushd/hushd/internal/testutil"
)

func TestGetScopeSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSettingsRepository(client)

	tests := []struct {
		name     string
		setup    func(t *testing.T)
		expected domain.CalendarScope
	}{
		{
			name:     "missing key defaults to all calendars",
			setup:    func(t *testing.T) {},
			expected: domain.AllCalendars(),
		},
		{
			name: "stored selection round-trips",
			setup: func(t *testing.T) {
				err := repo.SaveScope(ctx, domain.SelectedCalendars("work", "family"))
				if err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			expected: domain.SelectedCalendars("work", "family"),
		},
		{
			name: "empty selection round-trips as empty, not all",
			setup: func(t *testing.T) {
				err := repo.SaveScope(ctx, domain.SelectedCalendars())
				if err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			expected: domain.SelectedCalendars(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			scope, err := repo.GetScope(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if scope.All != tt.expected.All {
				t.Errorf("expected All %v, got %v", tt.expected.All, scope.All)
			}
			if len(scope.CalendarIDs) != len(tt.expected.CalendarIDs) {
				t.Fatalf("expected %d calendar IDs, got %d", len(tt.expected.CalendarIDs), len(scope.CalendarIDs))
			}
			for i, id := range tt.expected.CalendarIDs {
				if scope.CalendarIDs[i] != id {
					t.Errorf("expected calendar ID %s at %d, got %s", id, i, scope.CalendarIDs[i])
				}
			}
		})
	}
}

func TestGetWeekdaySettingSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSettingsRepository(client)

	tests := []struct {
		name     string
		setup    func(t *testing.T)
		expected domain.WeekdaySetting
	}{
		{
			name:     "missing key defaults to disabled filter",
			setup:    func(t *testing.T) {},
			expected: domain.DefaultWeekdaySetting(),
		},
		{
			name: "stored setting round-trips",
			setup: func(t *testing.T) {
				setting := domain.WeekdaySetting{
					Enabled: true,
					Mask:    domain.WeekdayMask(0).With(time.Monday).With(time.Friday),
				}
				if err := repo.SaveWeekdaySetting(ctx, setting); err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			expected: domain.WeekdaySetting{
				Enabled: true,
				Mask:    domain.WeekdayMask(0).With(time.Monday).With(time.Friday),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			setting, err := repo.GetWeekdaySetting(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if setting.Enabled != tt.expected.Enabled {
				t.Errorf("expected Enabled %v, got %v", tt.expected.Enabled, setting.Enabled)
			}
			if setting.Mask != tt.expected.Mask {
				t.Errorf("expected Mask %08b, got %08b", tt.expected.Mask, setting.Mask)
			}
		})
	}
}

func TestOverrideLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSettingsRepository(client)

	now := time.Now().UTC().Truncate(time.Millisecond)

	// Absent override surfaces the sentinel.
	if _, err := repo.GetOverride(ctx); err != domain.ErrOverrideNotFound {
		t.Fatalf("expected ErrOverrideNotFound, got %v", err)
	}

	// Clearing an absent override is a no-op.
	if err := repo.ClearOverride(ctx); err != nil {
		t.Fatalf("unexpected error clearing absent override: %v", err)
	}

	first := &domain.OneTimeOverride{
		Kind:       domain.OverrideSkipEvent,
		CalendarID: "work",
		EventID:    "standup",
		Start:      now,
		End:        now.Add(30 * time.Minute),
		CreatedAt:  now,
	}
	if err := repo.SaveOverride(ctx, first); err != nil {
		t.Fatalf("failed to save override: %v", err)
	}

	retrieved, err := repo.GetOverride(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retrieved.Kind != first.Kind {
		t.Errorf("expected Kind %s, got %s", first.Kind, retrieved.Kind)
	}
	if retrieved.EventID != first.EventID {
		t.Errorf("expected EventID %s, got %s", first.EventID, retrieved.EventID)
	}
	if !retrieved.Start.Equal(first.Start) || !retrieved.End.Equal(first.End) {
		t.Errorf("window mismatch: got [%v, %v)", retrieved.Start, retrieved.End)
	}

	// A second save replaces the first; at most one override exists.
	second := &domain.OneTimeOverride{
		Kind:       domain.OverrideEnableForEvent,
		CalendarID: "family",
		EventID:    "recital",
		Start:      now.Add(time.Hour),
		End:        now.Add(2 * time.Hour),
		CreatedAt:  now,
	}
	if err := repo.SaveOverride(ctx, second); err != nil {
		t.Fatalf("failed to replace override: %v", err)
	}

	retrieved, err = repo.GetOverride(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retrieved.EventID != second.EventID {
		t.Errorf("expected replacement override %s, got %s", second.EventID, retrieved.EventID)
	}

	if err := repo.ClearOverride(ctx); err != nil {
		t.Fatalf("failed to clear override: %v", err)
	}
	if _, err := repo.GetOverride(ctx); err != domain.ErrOverrideNotFound {
		t.Errorf("expected ErrOverrideNotFound after clear, got %v", err)
	}
}

func TestSaveOverrideError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSettingsRepository(client)

	tests := []struct {
		name        string
		override    *domain.OneTimeOverride
		expectedErr error
	}{
		{
			name:        "nil override",
			override:    nil,
			expectedErr: domain.ErrInvalidOverride,
		},
		{
			name: "unknown kind",
			override: &domain.OneTimeOverride{
				Kind:    domain.OverrideKind("mute_forever"),
				EventID: "e1",
			},
			expectedErr: domain.ErrInvalidOverride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveOverride(ctx, tt.override)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err != tt.expectedErr {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestWatchDeliversChanges(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSettingsRepository(client)

	changes, err := repo.Watch(ctx)
	if err != nil {
		t.Fatalf("failed to start watch: %v", err)
	}

	if err := repo.SaveScope(ctx, domain.SelectedCalendars("work")); err != nil {
		t.Fatalf("failed to save scope: %v", err)
	}

	select {
	case change := <-changes:
		if change.Kind != domain.SettingsChangeScope {
			t.Errorf("expected scope change, got %s", change.Kind)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()

	select {
	case _, ok := <-changes:
		if ok {
			// A buffered change may still drain; the channel must close soon.
			select {
			case _, ok = <-changes:
				if ok {
					t.Error("expected channel to close after cancellation")
				}
			case <-time.After(5 * time.Second):
				t.Fatal("timed out waiting for channel close")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
