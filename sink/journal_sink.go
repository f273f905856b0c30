package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/crazinneeees/svetofor/repositories"
)

// JournalSink writes every accepted transition to the durable journal.
// Snapshots and presence events are transient and never journaled.
type JournalSink struct {
	repository repositories.ITransitionRepository
	log        *slog.Logger
}

func NewJournalSink(repository repositories.ITransitionRepository, log *slog.Logger) JournalSink {
	return JournalSink{repository: repository, log: log}
}

func (j JournalSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.ColorChanged:
		return j.repository.Store(toStoredTransition(evt))
	default:
		j.log.Debug(fmt.Sprintf("Not journaled event : %v", evt))
		return nil
	}
}

func toStoredTransition(event event.ColorChanged) repositories.StoredTransition {
	return repositories.StoredTransition{
		ID:      event.ID,
		Color:   event.Color.String(),
		Actor:   event.Actor,
		ActorID: event.ActorID,
		At:      event.At,
	}
}
