package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one live connection to the signal.
// JoinSeq is a monotonically increasing admission number; the connected
// session with the smallest JoinSeq is the controller.
type Session struct {
	ID       uuid.UUID
	Name     string
	JoinSeq  uint64
	JoinedAt time.Time
}
