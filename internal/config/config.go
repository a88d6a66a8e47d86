package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port     string
	LogLevel slog.Level

	// DNDControllerURL points at the platform endpoint that owns the
	// interruption filter. Empty means the in-process controller is used.
	DNDControllerURL string
	// CalendarsFile is the YAML file listing the subscribed calendar feeds.
	CalendarsFile string

	Engine *EngineConfig
	Redis  *RedisConfig
	Waker  WakerConfig
}

// WakerConfig configures the managed-queue wake-up backend. Only consulted
// for the gcloud build; the local build arms an in-process timer.
type WakerConfig struct {
	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	maxRetries := 3
	if v := os.Getenv("WAKER_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	engineConfig, err := LoadEngineConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:             port,
		LogLevel:         parseLogLevel(os.Getenv("LOG_LEVEL")),
		DNDControllerURL: os.Getenv("DND_CONTROLLER_URL"),
		CalendarsFile:    os.Getenv("CALENDARS_FILE"),
		Engine:           engineConfig,
		Redis:            redisConfig,
		Waker: WakerConfig{
			GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

			MaxRetries: maxRetries,
		},
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
