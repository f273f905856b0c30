package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transition is one accepted color change, as recorded in the journal.
type Transition struct {
	ID      uuid.UUID
	Color   Color
	Actor   string
	ActorID uuid.UUID
	At      time.Time
}
