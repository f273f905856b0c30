package event

import (
	"time"

	"github.com/crazinneeees/svetofor/domain"
	"github.com/google/uuid"
)

type Kind string

const (
	KindStateSnapshot   Kind = "STATE_SNAPSHOT"
	KindColorChanged    Kind = "COLOR_CHANGED"
	KindPresenceChanged Kind = "PRESENCE_CHANGED"
)

type DomainEvent interface {
	Kind() Kind
}

// Envelope routes a domain event through the outbox.
// A nil Target means broadcast to every connected session.
// Permanent sinks receive every envelope regardless of target.
type Envelope struct {
	Event  DomainEvent
	Target *uuid.UUID
}

// StateSnapshot is the personal view of the signal sent to one session,
// on admission and on promotion.
type StateSnapshot struct {
	Color          domain.Color
	IsController   bool
	ControllerName string
	At             time.Time
}

func (StateSnapshot) Kind() Kind { return KindStateSnapshot }

// ColorChanged is an accepted mutation of the signal.
type ColorChanged struct {
	ID      uuid.UUID
	Color   domain.Color
	Actor   string
	ActorID uuid.UUID
	At      time.Time
}

func (ColorChanged) Kind() Kind { return KindColorChanged }

// PresenceChanged reports the session count after a join or a departure.
// ControllerName is empty when no session remains.
type PresenceChanged struct {
	TotalSessions  int
	ControllerName string
}

func (PresenceChanged) Kind() Kind { return KindPresenceChanged }
