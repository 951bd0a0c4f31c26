package moviepilot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// requestSpec describes one logical API call
type requestSpec struct {
	method string
	path   string
	query  url.Values
	form   url.Values // form-encoded body (login)
	body   any        // JSON body
	auth   bool
}

// linearBackoff returns a delay function that grows linearly with the
// attempt number: base, 2*base, 3*base, ...
func linearBackoff(base time.Duration) retry.DelayTypeFunc {
	return func(n uint, _ error, _ *retry.Config) time.Duration {
		return base * time.Duration(n+1)
	}
}

// do performs one logical API call with retries. Per-attempt outcomes are
// classified three ways: 200 succeeds, 401 invalidates the cached token and
// fails immediately, anything else (including transport errors and
// timeouts) is retried up to the configured bound. When auth is required
// the token is obtained first; failure to obtain one short-circuits before
// any network attempt.
func (c *Client) do(ctx context.Context, spec requestSpec) ([]byte, error) {
	var bearer string
	if spec.auth {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		bearer = token
	}

	var out []byte
	err := retry.Do(
		func() error {
			body, err := c.attempt(ctx, spec, bearer)
			if err != nil {
				return err
			}
			out = body
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.DelayType(linearBackoff(c.retryDelay)),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn().
				Err(err).
				Uint("attempt", n+1).
				Int("max_attempts", c.maxRetries).
				Str("path", spec.path).
				Msg("Request failed, retrying")
		}),
	)
	if err != nil {
		c.logger.Error().Err(err).Str("path", spec.path).Msg("Request failed")
		return nil, err
	}
	return out, nil
}

// attempt performs a single HTTP request
func (c *Client) attempt(ctx context.Context, spec requestSpec, bearer string) ([]byte, error) {
	requestURL := c.baseURL + spec.path
	if len(spec.query) > 0 {
		requestURL += "?" + spec.query.Encode()
	}

	var reqBody io.Reader
	var contentType string
	switch {
	case spec.form != nil:
		reqBody = strings.NewReader(spec.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case spec.body != nil:
		data, err := json.Marshal(spec.body)
		if err != nil {
			return nil, retry.Unrecoverable(fmt.Errorf("failed to marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, requestURL, reqBody)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	c.logger.Debug().Str("method", spec.method).
		Str("url", requestURL).
		Msg("Making MoviePilot API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		// a stale token stays stale; retrying is useless
		c.tokens.Invalidate()
		return nil, retry.Unrecoverable(fmt.Errorf("%w: status 401", ErrUnauthorized))
	default:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}
