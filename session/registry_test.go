package session

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fournest/mpsub/moviepilot"
)

func TestRegistryBasics(t *testing.T) {
	registry := NewRegistry()
	base := time.Now()

	_, ok := registry.Get("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())

	s := New("alice", []moviepilot.Movie{testMovie}, &fakeCatalog{}, zerolog.Nop(), base)
	registry.Set("alice", s)

	got, ok := registry.Get("alice")
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, registry.Len())

	registry.Clear("alice")
	_, ok = registry.Get("alice")
	assert.False(t, ok)
}

func TestRegistryOneSessionPerOwner(t *testing.T) {
	registry := NewRegistry()
	base := time.Now()

	first := New("alice", []moviepilot.Movie{testMovie}, &fakeCatalog{}, zerolog.Nop(), base)
	second := New("alice", []moviepilot.Movie{testShow}, &fakeCatalog{}, zerolog.Nop(), base)

	registry.Set("alice", first)
	registry.Set("alice", second)

	got, ok := registry.Get("alice")
	require.True(t, ok)
	assert.Same(t, second, got, "a new search replaces the previous session")
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryAdvanceWithoutSession(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Advance(context.Background(), "nobody", "1", time.Now())
	assert.False(t, ok)
}

func TestRegistrySweep(t *testing.T) {
	registry := NewRegistry()
	base := time.Now()

	stale := New("alice", []moviepilot.Movie{testMovie}, &fakeCatalog{}, zerolog.Nop(), base.Add(-2*TurnTimeout))
	fresh := New("bob", []moviepilot.Movie{testMovie}, &fakeCatalog{}, zerolog.Nop(), base)
	registry.Set("alice", stale)
	registry.Set("bob", fresh)

	expired := registry.Sweep(base)
	require.Len(t, expired, 1)
	assert.Equal(t, "alice", expired[0].Owner())

	_, ok := registry.Get("alice")
	assert.False(t, ok)
	_, ok = registry.Get("bob")
	assert.True(t, ok)
}

func TestRegistrySweepSkipsReplacedSession(t *testing.T) {
	registry := NewRegistry()
	base := time.Now()

	stale := New("alice", []moviepilot.Movie{testMovie}, &fakeCatalog{}, zerolog.Nop(), base.Add(-2*TurnTimeout))
	registry.Set("alice", stale)

	// owner started a new search before the sweep ran
	fresh := New("alice", []moviepilot.Movie{testShow}, &fakeCatalog{}, zerolog.Nop(), base)
	registry.Set("alice", fresh)

	expired := registry.Sweep(base)
	assert.Empty(t, expired)

	got, ok := registry.Get("alice")
	require.True(t, ok)
	assert.Same(t, fresh, got)
}

func TestRegistryReaperNotifiesOnce(t *testing.T) {
	registry := NewRegistry()
	base := time.Now()

	stale := New("alice", []moviepilot.Movie{testMovie}, &fakeCatalog{}, zerolog.Nop(), base.Add(-2*TurnTimeout))
	registry.Set("alice", stale)

	type notification struct{ owner, message string }
	notified := make(chan notification, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go registry.RunReaper(ctx, 10*time.Millisecond, func(owner, message string) {
		notified <- notification{owner, message}
	})

	select {
	case n := <-notified:
		assert.Equal(t, "alice", n.owner)
		assert.Equal(t, msgTimedOut, n.message)
	case <-time.After(time.Second):
		t.Fatal("reaper did not notify in time")
	}

	// the session is gone, so no further notifications arrive
	select {
	case n := <-notified:
		t.Fatalf("unexpected second notification for %s", n.owner)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 0, registry.Len())
}
