package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/crazinneeees/svetofor/domain"
	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type Sink struct {
}

func (s Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	return nil
}

func newSession(name string, seq uint64) *domain.Session {
	return &domain.Session{
		ID:       uuid.New(),
		Name:     name,
		JoinSeq:  seq,
		JoinedAt: time.Now().UTC(),
	}
}

func TestRegistry_First_Session_Becomes_Controller(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newSession("alice", 1)

	// Given nobody is connected
	req.Zero(registry.Size())
	req.Nil(registry.Controller())

	// When the first session joins
	isController := registry.Add(alice, Sink{})

	// Then it holds the controller role
	req.True(isController)
	req.Equal(1, registry.Size())
	req.Equal(alice, registry.Controller())
}

func TestRegistry_Later_Sessions_Are_Watchers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newSession("alice", 1)
	bob := newSession("bob", 2)

	// Given a controller already exists
	req.True(registry.Add(alice, Sink{}))

	// When another session joins
	isController := registry.Add(bob, Sink{})

	// Then the role does not move
	req.False(isController)
	req.Equal(alice, registry.Controller())
	req.Len(registry.Sinks(), 2)
}

func TestRegistry_Remove_Watcher_Keeps_Controller(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newSession("alice", 1)
	bob := newSession("bob", 2)
	registry.Add(alice, Sink{})
	registry.Add(bob, Sink{})

	// When a watcher leaves
	removed, promoted := registry.Remove(bob.ID)

	// Then nobody is promoted
	req.True(removed)
	req.Nil(promoted)
	req.Equal(alice, registry.Controller())
	req.Equal(1, registry.Size())
}

func TestRegistry_Remove_Controller_Promotes_Earliest_Survivor(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newSession("alice", 1)
	bob := newSession("bob", 2)
	carol := newSession("carol", 3)
	registry.Add(alice, Sink{})
	registry.Add(bob, Sink{})
	registry.Add(carol, Sink{})

	// When the controller leaves
	removed, promoted := registry.Remove(alice.ID)

	// Then the earliest joined survivor takes over, not the latest
	req.True(removed)
	req.Equal(bob, promoted)
	req.Equal(bob, registry.Controller())
}

func TestRegistry_Remove_Last_Session_Leaves_No_Controller(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newSession("alice", 1)
	registry.Add(alice, Sink{})

	// When the only session leaves
	removed, promoted := registry.Remove(alice.ID)

	// Then the registry is empty and nobody holds the role
	req.True(removed)
	req.Nil(promoted)
	req.Nil(registry.Controller())
	req.Zero(registry.Size())
}

func TestRegistry_Remove_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newSession("alice", 1)
	bob := newSession("bob", 2)
	registry.Add(alice, Sink{})
	registry.Add(bob, Sink{})

	// Given the controller already left once
	removed, promoted := registry.Remove(alice.ID)
	req.True(removed)
	req.Equal(bob, promoted)

	// When the same ID is removed again
	removed, promoted = registry.Remove(alice.ID)

	// Then nothing happens
	req.False(removed)
	req.Nil(promoted)
	req.Equal(bob, registry.Controller())
	req.Equal(1, registry.Size())
}

func TestRegistry_Remove_Unknown_ID_Is_A_NoOp(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	registry.Add(newSession("alice", 1), Sink{})

	removed, promoted := registry.Remove(uuid.New())

	req.False(removed)
	req.Nil(promoted)
	req.Equal(1, registry.Size())
}

func TestRegistry_Sessions_Are_Ordered_By_Join(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newSession("alice", 1)
	bob := newSession("bob", 2)
	carol := newSession("carol", 3)

	// Insertion order should not matter, only the join sequence
	registry.Add(carol, Sink{})
	registry.Add(alice, Sink{})
	registry.Add(bob, Sink{})

	sessions := registry.Sessions()

	req.Len(sessions, 3)
	req.Equal(alice, sessions[0])
	req.Equal(bob, sessions[1])
	req.Equal(carol, sessions[2])
}
