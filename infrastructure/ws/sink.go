package ws

import (
	"context"

	"github.com/crazinneeees/svetofor/domain/event"
)

// Sink bridges the fan-out worker to one connection's write pump.
type Sink struct {
	Events chan event.DomainEvent
}

func NewSink(bufferSize int) *Sink {
	return &Sink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by fanout.
// Redirect the event through the write pump owning this connection.
// When the buffer is full we wait until the fan-out deadline fires, so a
// slow consumer costs bounded time and never scrambles event order.
func (s *Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
