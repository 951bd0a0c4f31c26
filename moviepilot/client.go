package moviepilot

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const userAgent = "mpsub/1.2"

// Default client tuning, overridable through Config
const (
	DefaultTimeout       = 120 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = 1 * time.Second
	DefaultTokenBuffer   = 300 * time.Second
	DefaultTokenLifetime = 3600 * time.Second
)

// Config holds the settings needed to talk to a MoviePilot server
type Config struct {
	URL      string
	Username string
	Password string

	// Timeout bounds each network attempt
	Timeout time.Duration
	// MaxRetries is the total number of attempts per logical call
	MaxRetries int
	// RetryDelay is the base delay between attempts; the actual delay
	// grows linearly with the attempt number
	RetryDelay time.Duration
	// TokenBuffer is the margin before expiry at which the cached token
	// is refreshed rather than reused
	TokenBuffer time.Duration
	// TokenLifetime is assumed when the server omits expires_in
	TokenLifetime time.Duration
}

// Validate checks that the required settings are present
func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidConfig)
	}
	if c.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidConfig)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidConfig)
	}
	return nil
}

// Client talks to the MoviePilot REST API
type Client struct {
	baseURL       string
	username      string
	password      string
	maxRetries    int
	retryDelay    time.Duration
	tokenLifetime time.Duration

	httpClient *http.Client
	tokens     *tokenCache
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock overrides the time source used for token expiry checks
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.tokens.now = now
	}
}

// NewClient creates a new MoviePilot client. Configuration is validated as
// a group up front; no network call is made until the first operation.
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.TokenBuffer <= 0 {
		cfg.TokenBuffer = DefaultTokenBuffer
	}
	if cfg.TokenLifetime <= 0 {
		cfg.TokenLifetime = DefaultTokenLifetime
	}

	client := &Client{
		baseURL:       strings.TrimRight(cfg.URL, "/"),
		username:      cfg.Username,
		password:      cfg.Password,
		maxRetries:    cfg.MaxRetries,
		retryDelay:    cfg.RetryDelay,
		tokenLifetime: cfg.TokenLifetime,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		logger:        logger,
	}
	client.tokens = newTokenCache(cfg.TokenBuffer, client.login)

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Ping verifies connectivity and credentials by obtaining a token
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.tokens.Token(ctx); err != nil {
		return fmt.Errorf("failed to connect to MoviePilot: %w", err)
	}
	return nil
}
