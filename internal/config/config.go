// Package config loads process configuration for the streakline CLI.
//
// Persistent, per-database preferences live in the settings table. This
// package covers what varies per machine or per invocation: log verbosity,
// a timezone override, cache lifetime and the database location.
package config

import (
	"time"

	"github.com/julianstephens/streakline/internal/constants"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Timezone overrides the timezone stored in settings when non-empty.
	Timezone string `koanf:"timezone"`

	// CacheTTL bounds how long a computed streak is reused. Zero disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// DB is a SQLite path, a PostgreSQL connection string, or "keyring".
	DB string `koanf:"db"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel: "warn",
		CacheTTL: constants.DefaultCacheTTL,
		DB:       constants.DefaultConfigPath,
	}
}
