package moviepilot

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid moviepilot configuration")
	// ErrUnauthorized indicates a login failure or a rejected token
	ErrUnauthorized = errors.New("unauthorized: check username and password")
	// ErrInvalidTMDBID indicates an unusable TMDB identifier
	ErrInvalidTMDBID = errors.New("invalid tmdb id")
)

// APIError represents a non-2xx response from the MoviePilot API
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("moviepilot API error: status %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsServerError checks if the error indicates a server-side failure
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
