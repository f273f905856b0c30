package sink

import (
	"context"

	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/crazinneeees/svetofor/observability"
)

// MonitoringSink feeds the monitoring manager from the event stream so the
// dashboard never has to query the coordinator.
type MonitoringSink struct {
	monitoring *observability.MonitoringManager
}

func NewMonitoringSink(monitoring *observability.MonitoringManager) MonitoringSink {
	return MonitoringSink{monitoring: monitoring}
}

func (m MonitoringSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.ColorChanged:
		m.monitoring.IncrColorChanges()
		m.monitoring.AddTransition(evt.Color.String(), evt.Actor)
	case event.PresenceChanged:
		m.monitoring.SetCurrentSessions(evt.TotalSessions)
	}
	return nil
}
