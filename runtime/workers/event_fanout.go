package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/crazinneeees/svetofor/contract"
	"github.com/crazinneeees/svetofor/domain/event"
)

// EventFanout delivers envelopes to in-process consumers and sessions.
//
// A single instance drains the outbox, so sinks observe events in the exact
// order the coordinator emitted them. Delivery inside one envelope is
// sequential for the same reason.
//
// It provides best-effort delivery with no retries. A sink that cannot
// accept an event within the sink timeout is counted as a failure and
// skipped; the session itself is never removed here, the transport owns
// the connection lifecycle.
type EventFanout struct {
	log            *slog.Logger
	permanentSinks []contract.EventSink
	registry       contract.IRegistry
	outbox         chan event.Envelope
	telemetryChan  chan event.Event
	sinkTimeout    time.Duration
}

func NewEventFanout(log *slog.Logger, permanentSinks []contract.EventSink,
	registry contract.IRegistry, outbox chan event.Envelope,
	telemetryChan chan event.Event, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:            log,
		permanentSinks: permanentSinks,
		registry:       registry,
		outbox:         outbox,
		telemetryChan:  telemetryChan,
		sinkTimeout:    sinkTimeout,
	}
}

func (w EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case envelope := <-w.outbox:
			w.Fanout(ctx, envelope)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping envelope fan-out")
			return nil
		}
	}
}

// Fanout delivers one envelope: permanent sinks always receive it, then
// either the targeted session or every registered session.
func (w EventFanout) Fanout(ctx context.Context, envelope event.Envelope) {
	started := time.Now()
	delivered, failed := 0, 0

	for _, s := range w.permanentSinks {
		if w.consume(ctx, s, envelope.Event) {
			delivered++
		} else {
			failed++
		}
	}

	if envelope.Target != nil {
		// A session may have disconnected between emission and delivery.
		if s, ok := w.registry.GetSink(*envelope.Target); ok {
			if w.consume(ctx, s, envelope.Event) {
				delivered++
			} else {
				failed++
			}
		}
	} else {
		for _, s := range w.registry.Sinks() {
			if w.consume(ctx, s, envelope.Event) {
				delivered++
			} else {
				failed++
			}
		}
	}

	w.report(envelope.Event.Kind(), delivered, failed, time.Since(started))
}

func (w EventFanout) consume(ctx context.Context, s contract.EventSink, evt event.DomainEvent) bool {
	sendCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
	defer cancel()

	if err := s.Consume(sendCtx, evt); err != nil {
		w.log.Warn("Sink refused event", "kind", evt.Kind(), "error", err)
		return false
	}
	return true
}

func (w EventFanout) report(kind event.Kind, delivered, failed int, elapsed time.Duration) {
	select {
	case w.telemetryChan <- event.Event{
		Type:      event.DeliveryReportType,
		CreatedAt: time.Now().UTC(),
		Payload: event.DeliveryReport{
			Kind:      kind,
			Delivered: delivered,
			Failed:    failed,
			Elapsed:   elapsed,
		},
	}:
	default:
		w.log.Debug("Observability telemetry event lost")
	}
}
