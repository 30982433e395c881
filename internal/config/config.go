package config

import "github.com/spf13/viper"

// Config holds all runtime configuration.
// Values are populated from .klare.yaml, KLARE_* env vars, and CLI flags.
type Config struct {
	// RemoteURL is the base URL of the backend REST API. Empty means
	// offline mode: no remote sync is attempted.
	RemoteURL string `mapstructure:"remote_url"`
	// RemoteAnonKey authenticates requests against the backend.
	RemoteAnonKey string `mapstructure:"remote_anon_key"`
	// UserID identifies the learner's remote record. When empty an
	// anonymous ID is generated on first run and persisted locally.
	UserID string `mapstructure:"user_id"`
	// DBPath overrides the local database location.
	DBPath             string `mapstructure:"db_path"`
	RemoteTimeoutSecs  int    `mapstructure:"remote_timeout_secs"`
	Verbose            bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("remote_url", "")
	viper.SetDefault("remote_anon_key", "")
	viper.SetDefault("user_id", "")
	viper.SetDefault("db_path", "")
	viper.SetDefault("remote_timeout_secs", 5)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
