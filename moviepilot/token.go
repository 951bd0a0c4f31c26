package moviepilot

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// loginFunc performs a login and returns the new token with its lifetime
type loginFunc func(ctx context.Context) (token string, ttl time.Duration, err error)

// tokenCache holds the current bearer token and refreshes it proactively.
// The mutex guards only the cached fields; the login call itself runs
// outside the lock, deduplicated through singleflight so that concurrent
// callers trigger at most one login.
type tokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time

	buffer time.Duration
	group  singleflight.Group
	login  loginFunc
	now    func() time.Time
}

func newTokenCache(buffer time.Duration, login loginFunc) *tokenCache {
	return &tokenCache{
		buffer: buffer,
		login:  login,
		now:    time.Now,
	}
}

// cached returns the token if it is still more than the buffer window away
// from expiry
func (tc *tokenCache) cached() (string, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.token != "" && tc.now().Before(tc.expiresAt.Add(-tc.buffer)) {
		return tc.token, true
	}
	return "", false
}

// Token returns a valid bearer token, logging in when the cached one is
// missing or inside the refresh buffer. A failed login leaves any previous
// cache entry untouched.
func (tc *tokenCache) Token(ctx context.Context) (string, error) {
	if token, ok := tc.cached(); ok {
		return token, nil
	}

	v, err, _ := tc.group.Do("login", func() (interface{}, error) {
		// another caller may have finished a refresh while we waited
		if token, ok := tc.cached(); ok {
			return token, nil
		}

		token, ttl, err := tc.login(ctx)
		if err != nil {
			return nil, err
		}

		tc.mu.Lock()
		tc.token = token
		tc.expiresAt = tc.now().Add(ttl)
		tc.mu.Unlock()
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate clears the cached token so the next call performs a fresh
// login. Called when the API rejects the current token.
func (tc *tokenCache) Invalidate() {
	tc.mu.Lock()
	tc.token = ""
	tc.expiresAt = time.Time{}
	tc.mu.Unlock()
}
