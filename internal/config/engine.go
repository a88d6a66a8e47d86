package config

import (
	"os"
	"time"
)

const (
	engineHorizonEnv      = "ENGINE_HORIZON"
	engineFallbackEnv     = "ENGINE_FALLBACK_INTERVAL"
	enginePeriodicSpecEnv = "ENGINE_PERIODIC_SPEC"
	engineTimezoneEnv     = "ENGINE_TIMEZONE"

	defaultEngineHorizon      = 24 * time.Hour
	defaultEngineFallback     = 15 * time.Minute
	defaultEnginePeriodicSpec = "*/30 * * * *"
)

// EngineConfig tunes the evaluation loop: how far ahead events are fetched,
// how often a boundary-less state is re-checked, and which timezone weekday
// filtering uses.
type EngineConfig struct {
	Horizon          time.Duration
	FallbackInterval time.Duration
	PeriodicSpec     string
	Timezone         *time.Location
}

func LoadEngineConfig() (*EngineConfig, error) {
	horizon := defaultEngineHorizon
	if v := os.Getenv(engineHorizonEnv); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidEngineHorizon
		}
		horizon = parsed
	}

	fallback := defaultEngineFallback
	if v := os.Getenv(engineFallbackEnv); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidEngineFallback
		}
		fallback = parsed
	}

	periodicSpec := defaultEnginePeriodicSpec
	if v, ok := os.LookupEnv(enginePeriodicSpecEnv); ok {
		// Explicit empty disables the periodic alarm.
		periodicSpec = v
	}

	timezone := time.Local
	if v := os.Getenv(engineTimezoneEnv); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, ErrInvalidEngineTimezone
		}
		timezone = loc
	}

	return &EngineConfig{
		Horizon:          horizon,
		FallbackInterval: fallback,
		PeriodicSpec:     periodicSpec,
		Timezone:         timezone,
	}, nil
}
