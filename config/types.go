package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	MoviePilot MoviePilotConfig `mapstructure:"moviepilot"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// MoviePilotConfig holds the MoviePilot connection details and client
// tuning. URL, username and password are required; everything else has a
// sensible default.
type MoviePilotConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	TokenBuffer   time.Duration `mapstructure:"token_buffer"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
