package session

import (
	"context"
	"sync"
	"time"
)

// Registry maps owner identities to their active session. A single lock
// covers the whole map so at most one live session per owner is ever
// observable. The lock is never held across a session's own transition
// work, so one owner's network wait cannot block another's lookup.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Get returns the active session for an owner
func (r *Registry) Get(owner string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[owner]
	return s, ok
}

// Set installs a session, replacing any previous one for the same owner
func (r *Registry) Set(owner string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[owner] = s
}

// Clear removes the owner's session
func (r *Registry) Clear(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, owner)
}

// clearIf removes the owner's session only if it is still the given one,
// so a sweep cannot drop a session installed after its snapshot
func (r *Registry) clearIf(owner string, s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[owner] == s {
		delete(r.sessions, owner)
		return true
	}
	return false
}

// Len returns the number of active sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Advance feeds one reply to the owner's session, if any. Terminal
// outcomes remove the session from the registry.
func (r *Registry) Advance(ctx context.Context, owner, input string, now time.Time) (Result, bool) {
	s, ok := r.Get(owner)
	if !ok {
		return Result{}, false
	}

	res := s.Advance(ctx, input, now)
	if res.Outcome.Terminal() {
		r.clearIf(owner, s)
	}
	return res, true
}

// Sweep removes and returns the sessions whose deadline has elapsed.
// Expiry is checked outside the registry lock; a session that advanced in
// the meantime is left alone.
func (r *Registry) Sweep(now time.Time) []*Session {
	r.mu.Lock()
	snapshot := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		snapshot = append(snapshot, s)
	}
	r.mu.Unlock()

	var expired []*Session
	for _, s := range snapshot {
		if s.Expired(now) && r.clearIf(s.Owner(), s) {
			expired = append(expired, s)
		}
	}
	return expired
}

// RunReaper periodically sweeps expired sessions and emits a single
// timeout notification per session. Blocks until the context is done.
func (r *Registry) RunReaper(ctx context.Context, interval time.Duration, notify func(owner, message string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, s := range r.Sweep(now) {
				notify(s.Owner(), msgTimedOut)
			}
		}
	}
}
