package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hushd/hushd/internal/domain"
)

const (
	scopeKey    = "hushd:settings:scope"
	weekdaysKey = "hushd:settings:weekdays"
	overrideKey = "hushd:settings:override"

	changeChannel = "hushd:settings:changed"
)

var (
	ErrInvalidScopeData    = errors.New("invalid scope data in store")
	ErrInvalidWeekdayData  = errors.New("invalid weekday data in store")
	ErrInvalidOverrideData = errors.New("invalid override data in store")
)

type scopeRecord struct {
	All         bool     `json:"all"`
	CalendarIDs []string `json:"calendar_ids,omitempty"`
}

type weekdayRecord struct {
	Enabled bool  `json:"enabled"`
	Mask    uint8 `json:"mask"`
}

type overrideRecord struct {
	Kind       string    `json:"kind"`
	CalendarID string    `json:"calendar_id"`
	EventID    string    `json:"event_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	CreatedAt  time.Time `json:"created_at"`
}

type settingsRepository struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) domain.SettingsRepository {
	return &settingsRepository{
		client: client,
	}
}

func (r *settingsRepository) GetScope(ctx context.Context) (domain.CalendarScope, error) {
	data, err := r.client.Get(ctx, scopeKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.AllCalendars(), nil
		}
		return domain.CalendarScope{}, err
	}

	var record scopeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.CalendarScope{}, ErrInvalidScopeData
	}

	return domain.CalendarScope{
		All:         record.All,
		CalendarIDs: record.CalendarIDs,
	}, nil
}

func (r *settingsRepository) SaveScope(ctx context.Context, scope domain.CalendarScope) error {
	data, err := json.Marshal(scopeRecord{
		All:         scope.All,
		CalendarIDs: scope.CalendarIDs,
	})
	if err != nil {
		return ErrInvalidScopeData
	}

	if err := r.client.Set(ctx, scopeKey, data, 0).Err(); err != nil {
		return err
	}

	r.publishChange(ctx, domain.SettingsChangeScope)
	return nil
}

func (r *settingsRepository) GetWeekdaySetting(ctx context.Context) (domain.WeekdaySetting, error) {
	data, err := r.client.Get(ctx, weekdaysKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.DefaultWeekdaySetting(), nil
		}
		return domain.WeekdaySetting{}, err
	}

	var record weekdayRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.WeekdaySetting{}, ErrInvalidWeekdayData
	}

	return domain.WeekdaySetting{
		Enabled: record.Enabled,
		Mask:    domain.WeekdayMask(record.Mask),
	}, nil
}

func (r *settingsRepository) SaveWeekdaySetting(ctx context.Context, setting domain.WeekdaySetting) error {
	data, err := json.Marshal(weekdayRecord{
		Enabled: setting.Enabled,
		Mask:    uint8(setting.Mask),
	})
	if err != nil {
		return ErrInvalidWeekdayData
	}

	if err := r.client.Set(ctx, weekdaysKey, data, 0).Err(); err != nil {
		return err
	}

	r.publishChange(ctx, domain.SettingsChangeWeekdays)
	return nil
}

func (r *settingsRepository) GetOverride(ctx context.Context) (*domain.OneTimeOverride, error) {
	data, err := r.client.Get(ctx, overrideKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrOverrideNotFound
		}
		return nil, err
	}

	var record overrideRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidOverrideData
	}

	return &domain.OneTimeOverride{
		Kind:       domain.OverrideKind(record.Kind),
		CalendarID: record.CalendarID,
		EventID:    record.EventID,
		Start:      record.Start,
		End:        record.End,
		CreatedAt:  record.CreatedAt,
	}, nil
}

func (r *settingsRepository) SaveOverride(ctx context.Context, override *domain.OneTimeOverride) error {
	if override == nil || !override.Kind.Valid() {
		return domain.ErrInvalidOverride
	}

	data, err := json.Marshal(overrideRecord{
		Kind:       override.Kind.String(),
		CalendarID: override.CalendarID,
		EventID:    override.EventID,
		Start:      override.Start,
		End:        override.End,
		CreatedAt:  override.CreatedAt,
	})
	if err != nil {
		return ErrInvalidOverrideData
	}

	// Replaces any prior override; at most one exists at a time.
	if err := r.client.Set(ctx, overrideKey, data, 0).Err(); err != nil {
		return err
	}

	r.publishChange(ctx, domain.SettingsChangeOverride)
	return nil
}

func (r *settingsRepository) ClearOverride(ctx context.Context) error {
	deleted, err := r.client.Del(ctx, overrideKey).Result()
	if err != nil {
		return err
	}

	// Deleting an absent override is a no-op, not an error, and publishes no
	// change.
	if deleted > 0 {
		r.publishChange(ctx, domain.SettingsChangeOverride)
	}
	return nil
}

func (r *settingsRepository) Watch(ctx context.Context) (<-chan domain.SettingsChange, error) {
	sub := r.client.Subscribe(ctx, changeChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	changes := make(chan domain.SettingsChange)
	messages := sub.Channel()

	go func() {
		defer close(changes)
		defer func() { _ = sub.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				change := domain.SettingsChange{
					Kind: domain.SettingsChangeKind(msg.Payload),
					At:   time.Now(),
				}
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return changes, nil
}

// publishChange notifies watchers after a successful write. Publish failures
// are logged and swallowed; the armed boundary or periodic alarm picks the
// change up on the next pass.
func (r *settingsRepository) publishChange(ctx context.Context, kind domain.SettingsChangeKind) {
	if err := r.client.Publish(ctx, changeChannel, string(kind)).Err(); err != nil {
		slog.WarnContext(ctx, "failed to publish settings change",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}
}
