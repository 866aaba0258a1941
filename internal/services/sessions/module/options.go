package module

import (
	"minutes/internal/platform/config"
)

// Options configures the sessions module
type Options struct {
	MaxEvents int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_SESSIONS_")
	return Options{
		MaxEvents: sf.MayInt("MAX_EVENTS", 500),
	}
}
