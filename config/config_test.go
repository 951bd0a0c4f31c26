package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		MoviePilot: MoviePilotConfig{
			URL:        "http://localhost:3000",
			Username:   "admin",
			Password:   "secret",
			Timeout:    120 * time.Second,
			MaxRetries: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.MoviePilot.URL = "" },
			wantErr: true,
		},
		{
			name:    "missing username",
			mutate:  func(c *Config) { c.MoviePilot.Username = "" },
			wantErr: true,
		},
		{
			name:    "missing password",
			mutate:  func(c *Config) { c.MoviePilot.Password = "" },
			wantErr: true,
		},
		{
			name:    "zero retries",
			mutate:  func(c *Config) { c.MoviePilot.MaxRetries = 0 },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.MoviePilot.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `moviepilot:
  url: http://localhost:3000
  username: admin
  password: secret
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MoviePilot.URL != "http://localhost:3000" {
		t.Errorf("url = %q", cfg.MoviePilot.URL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}

	// defaults fill what the file omits
	if cfg.MoviePilot.Timeout != 120*time.Second {
		t.Errorf("timeout = %v, want default 120s", cfg.MoviePilot.Timeout)
	}
	if cfg.MoviePilot.MaxRetries != 3 {
		t.Errorf("max_retries = %d, want default 3", cfg.MoviePilot.MaxRetries)
	}
	if cfg.MoviePilot.TokenBuffer != 300*time.Second {
		t.Errorf("token_buffer = %v, want default 300s", cfg.MoviePilot.TokenBuffer)
	}
	if cfg.MoviePilot.TokenLifetime != 3600*time.Second {
		t.Errorf("token_lifetime = %v, want default 3600s", cfg.MoviePilot.TokenLifetime)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("logging format = %q, want default console", cfg.Logging.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
