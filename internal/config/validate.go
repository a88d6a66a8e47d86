package config

func ValidateForRun(cfg *Config) error {
	if cfg.CalendarsFile == "" {
		return ErrCalendarsRequired
	}
	return cfg.Redis.Validate()
}
