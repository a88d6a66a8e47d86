package config

import "errors"

var (
	ErrRedisAddrMissing  = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB    = errors.New("REDIS_DB must be a valid integer")
	ErrCalendarsRequired = errors.New("CALENDARS_FILE environment variable is required")

	ErrInvalidEngineHorizon  = errors.New("ENGINE_HORIZON must be a positive duration")
	ErrInvalidEngineFallback = errors.New("ENGINE_FALLBACK_INTERVAL must be a positive duration")
	ErrInvalidEngineTimezone = errors.New("ENGINE_TIMEZONE must be a valid IANA timezone name")
)
