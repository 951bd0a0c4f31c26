package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".mpsub"))
		}

		// Check /etc
		v.AddConfigPath("/etc/mpsub/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// MoviePilot client defaults
	v.SetDefault("moviepilot.timeout", 120*time.Second)
	v.SetDefault("moviepilot.max_retries", 3)
	v.SetDefault("moviepilot.retry_delay", 1*time.Second)
	v.SetDefault("moviepilot.token_buffer", 300*time.Second)
	v.SetDefault("moviepilot.token_lifetime", 3600*time.Second)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid. The MoviePilot settings
// are validated as a group so a missing credential surfaces here, before
// any network call is attempted.
func validate(cfg *Config) error {
	if cfg.MoviePilot.URL == "" {
		return fmt.Errorf("moviepilot.url is required")
	}
	if cfg.MoviePilot.Username == "" {
		return fmt.Errorf("moviepilot.username is required")
	}
	if cfg.MoviePilot.Password == "" {
		return fmt.Errorf("moviepilot.password is required")
	}

	if cfg.MoviePilot.MaxRetries < 1 {
		return fmt.Errorf("moviepilot.max_retries must be at least 1")
	}
	if cfg.MoviePilot.Timeout <= 0 {
		return fmt.Errorf("moviepilot.timeout must be positive")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
