// Package projection builds local read models from observed events.
// Handles ordering and bounded retention.
// Does not emit events or interact with transports directly.
package projection

import (
	"context"
	"sync"

	"github.com/crazinneeees/svetofor/domain"
	"github.com/crazinneeees/svetofor/domain/event"
)

// Timeline holds the most recent transitions in memory.
// Older entries are evicted once the capacity is reached.
type Timeline struct {
	mu          sync.RWMutex
	capacity    int
	transitions []domain.Transition
}

func NewTimeline(capacity int) *Timeline {
	return &Timeline{
		capacity:    capacity,
		transitions: nil,
	}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.ColorChanged:
		t.mu.Lock()
		t.transitions = append(t.transitions, fromEvent(evt))
		if t.capacity > 0 && len(t.transitions) > t.capacity {
			t.transitions = t.transitions[len(t.transitions)-t.capacity:]
		}
		t.mu.Unlock()
	}
	return nil
}

// Recent returns the retained transitions, newest first.
func (t *Timeline) Recent() []domain.Transition {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.Transition, len(t.transitions))
	for i, transition := range t.transitions {
		out[len(t.transitions)-1-i] = transition
	}
	return out
}

func fromEvent(event event.ColorChanged) domain.Transition {
	return domain.Transition{
		ID:      event.ID,
		Color:   event.Color,
		Actor:   event.Actor,
		ActorID: event.ActorID,
		At:      event.At,
	}
}
