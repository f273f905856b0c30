package runtime

import (
	"sort"
	"sync"

	"github.com/crazinneeees/svetofor/contract"
	"github.com/crazinneeees/svetofor/domain"
	"github.com/google/uuid"
)

type member struct {
	session *domain.Session
	sink    contract.EventSink
}

// Registry tracks the live sessions and their delivery sinks.
// Reads are safe concurrently with the fan-out worker; compound
// mutations are additionally serialized by the Coordinator lock.
type Registry struct {
	mu           sync.RWMutex
	members      map[uuid.UUID]*member
	controllerID uuid.UUID
}

func NewRegistry() *Registry {
	return &Registry{members: make(map[uuid.UUID]*member)}
}

// Add registers a session with its sink.
// The first session of an empty registry becomes controller;
// the return value reports whether that happened here.
func (r *Registry) Add(session *domain.Session, sink contract.EventSink) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members[session.ID] = &member{session: session, sink: sink}
	if r.controllerID == uuid.Nil {
		r.controllerID = session.ID
		return true
	}
	return false
}

// Remove drops a session; removing an unknown ID is a no-op.
// When the controller leaves and survivors remain, the survivor with the
// smallest JoinSeq is promoted and returned.
func (r *Registry) Remove(id uuid.UUID) (bool, *domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return false, nil
	}
	delete(r.members, id)

	if r.controllerID != id {
		return true, nil
	}

	r.controllerID = uuid.Nil
	var next *member
	for _, m := range r.members {
		if next == nil || m.session.JoinSeq < next.session.JoinSeq {
			next = m
		}
	}
	if next == nil {
		return true, nil
	}
	r.controllerID = next.session.ID
	return true, next.session
}

func (r *Registry) Get(id uuid.UUID) (*domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return nil, false
	}
	return m.session, true
}

func (r *Registry) GetSink(id uuid.UUID) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return nil, false
	}
	return m.sink, true
}

// Controller returns the current controller session, or nil when the
// registry is empty.
func (r *Registry) Controller() *domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[r.controllerID]
	if !ok {
		return nil
	}
	return m.session
}

func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Sinks returns a copy of all connected sinks so the fan-out worker can
// iterate without holding the registry lock.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]contract.EventSink, 0, len(r.members))
	for _, m := range r.members {
		sinks = append(sinks, m.sink)
	}
	return sinks
}

// Sessions returns a copy of all live sessions ordered by join sequence.
func (r *Registry) Sessions() []*domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*domain.Session, 0, len(r.members))
	for _, m := range r.members {
		sessions = append(sessions, m.session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].JoinSeq < sessions[j].JoinSeq
	})
	return sessions
}
