// Package runtime owns the authoritative signal state and its propagation.
// It coordinates sessions, roles, and fan-out without containing any
// transport concerns.
package runtime

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/crazinneeees/svetofor/contract"
	"github.com/crazinneeees/svetofor/domain"
	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/crazinneeees/svetofor/errors"
	"github.com/crazinneeees/svetofor/moderation"
	"github.com/crazinneeees/svetofor/observability"
	"github.com/crazinneeees/svetofor/repositories"
	"github.com/crazinneeees/svetofor/runtime/workers"
	"github.com/crazinneeees/svetofor/sink"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

//go:embed wordlists/*
var wordlistsFolder embed.FS

// fallbackName replaces display names that moderation leaves empty.
const fallbackName = "guest"

// Coordinator serializes every compound mutation of the signal under one
// lock and emits ordered envelopes into the outbox. A single fan-out
// worker drains the outbox, so the channel order is the global order every
// session observes.
type Coordinator struct {
	mu                   sync.RWMutex
	log                  *slog.Logger
	color                domain.Color
	joinSeq              uint64
	moderator            *moderation.Moderator
	permanentSinks       []contract.EventSink
	supervisor           contract.ISupervisor
	registry             contract.IRegistry
	journal              repositories.ITransitionRepository
	monitoring           *observability.MonitoringManager
	outbox               chan event.Envelope
	telemetryChan        chan event.Event
	sinkTimeout          time.Duration
	metricInterval       time.Duration
	latencyThreshold     time.Duration
	lowCapacityThreshold int
	charReplacement      rune
}

func NewCoordinator(log *slog.Logger, supervisor *workers.Supervisor,
	registry *Registry, journal repositories.ITransitionRepository,
	monitoring *observability.MonitoringManager,
	telemetryChan chan event.Event,
	bufferSize int, sinkTimeout, metricInterval, latencyThreshold time.Duration,
	lowCapacityThreshold int, charReplacement rune) *Coordinator {
	return &Coordinator{
		log:                  log,
		color:                domain.ColorNone,
		permanentSinks:       nil,
		supervisor:           supervisor,
		registry:             registry,
		journal:              journal,
		monitoring:           monitoring,
		outbox:               make(chan event.Envelope, bufferSize),
		telemetryChan:        telemetryChan,
		sinkTimeout:          sinkTimeout,
		metricInterval:       metricInterval,
		latencyThreshold:     latencyThreshold,
		lowCapacityThreshold: lowCapacityThreshold,
		charReplacement:      charReplacement,
	}
}

// Add registers permanent sinks that receive every envelope.
// Must be called before Start: the fan-out worker snapshots the sink list.
func (c *Coordinator) Add(sinks ...contract.EventSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.permanentSinks = append(c.permanentSinks, sinks...)
}

// Connect admits a session: the display name is moderated, an admission
// number is assigned, and the role is decided. The new session receives a
// personal state snapshot; everyone receives the updated presence.
// Both payloads are captured under the lock, so the counts they carry are
// consistent with the emission order.
func (c *Coordinator) Connect(_ context.Context, name string, connSink contract.EventSink) (*domain.Session, error) {
	clean := c.moderateName(name)
	now := time.Now().UTC()

	c.mu.Lock()
	c.joinSeq++
	session := &domain.Session{
		ID:       uuid.New(),
		Name:     clean,
		JoinSeq:  c.joinSeq,
		JoinedAt: now,
	}
	isController := c.registry.Add(session, connSink)
	c.outbox <- event.Envelope{
		Event: event.StateSnapshot{
			Color:          c.color,
			IsController:   isController,
			ControllerName: c.controllerName(),
			At:             now,
		},
		Target: lo.ToPtr(session.ID),
	}
	c.outbox <- event.Envelope{
		Event: event.PresenceChanged{
			TotalSessions:  c.registry.Size(),
			ControllerName: c.controllerName(),
		},
	}
	c.mu.Unlock()

	c.log.Info("session joined", "session_id", session.ID, "name", clean, "controller", isController)
	return session, nil
}

// Disconnect removes a session; calling it twice for the same ID is a no-op.
// When the controller leaves, the earliest-joined survivor is promoted and
// every survivor receives a personal role snapshot before the presence
// broadcast, so no client keeps a stale idea of who controls the signal.
func (c *Coordinator) Disconnect(_ context.Context, id uuid.UUID) {
	c.mu.Lock()
	removed, promoted := c.registry.Remove(id)
	if !removed {
		c.mu.Unlock()
		return
	}
	now := time.Now().UTC()
	if promoted != nil {
		for _, survivor := range c.registry.Sessions() {
			c.outbox <- event.Envelope{
				Event: event.StateSnapshot{
					Color:          c.color,
					IsController:   survivor.ID == promoted.ID,
					ControllerName: promoted.Name,
					At:             now,
				},
				Target: lo.ToPtr(survivor.ID),
			}
		}
	}
	if c.registry.Size() > 0 {
		c.outbox <- event.Envelope{
			Event: event.PresenceChanged{
				TotalSessions:  c.registry.Size(),
				ControllerName: c.controllerName(),
			},
		}
	}
	c.mu.Unlock()

	c.log.Info("session left", "session_id", id, "promoted", promoted != nil)
}

// SetColor mutates the signal on behalf of a session.
// Only the current controller may change the color; everyone, the
// controller included, learns the new color through the broadcast.
func (c *Coordinator) SetColor(_ context.Context, id uuid.UUID, raw string) error {
	color, err := domain.ParseColor(raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.registry.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownSession, id)
	}
	controller := c.registry.Controller()
	if controller == nil || controller.ID != id {
		return fmt.Errorf("%w: %s", errors.ErrNotController, session.Name)
	}

	c.color = color
	c.outbox <- event.Envelope{
		Event: event.ColorChanged{
			ID:      uuid.New(),
			Color:   color,
			Actor:   session.Name,
			ActorID: session.ID,
			At:      time.Now().UTC(),
		},
	}
	return nil
}

// Status returns a consistent read of the signal state.
func (c *Coordinator) Status() domain.StatusSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.StatusSnapshot{
		Color:          c.color,
		TotalSessions:  c.registry.Size(),
		ControllerName: c.controllerName(),
	}
}

// History pages the transition journal, newest first.
func (c *Coordinator) History(cursor *string) ([]domain.Transition, *string, error) {
	stored, next, err := c.journal.Recent(cursor)
	return fromStoredTransitions(stored), next, err
}

// SearchByActor finds journal entries whose actor matches the query.
func (c *Coordinator) SearchByActor(ctx context.Context, actor string, limit int) ([]domain.Transition, error) {
	stored, err := c.journal.SearchByActor(ctx, actor, limit)
	return fromStoredTransitions(stored), err
}

func fromStoredTransitions(items []repositories.StoredTransition) []domain.Transition {
	return lo.Map(items, func(item repositories.StoredTransition, _ int) domain.Transition {
		return domain.Transition{
			ID:      item.ID,
			Color:   domain.Color(item.Color),
			Actor:   item.Actor,
			ActorID: item.ActorID,
			At:      item.At,
		}
	})
}

// controllerName is read under the coordinator lock by all callers.
func (c *Coordinator) controllerName() string {
	if controller := c.registry.Controller(); controller != nil {
		return controller.Name
	}
	return ""
}

func (c *Coordinator) moderateName(name string) string {
	c.mu.RLock()
	moderator := c.moderator
	replacement := c.charReplacement
	c.mu.RUnlock()

	clean := strings.TrimSpace(name)
	if moderator != nil {
		censored, matched := moderator.Censor(clean)
		if len(matched) > 0 {
			c.log.Debug("display name moderated", "matched", matched)
		}
		clean = censored
	}
	if strings.Trim(clean, string(replacement)+" ") == "" {
		return fallbackName
	}
	return clean
}

// Start initiates the coordinator by preparing all components (moderation,
// pipeline, telemetry) and then starting the supervisor. It uses a
// preparation pattern to minimize mutex locking time.
func (c *Coordinator) Start(ctx context.Context) error {
	// 1. Preparation phase (No Lock)
	// Heavy tasks like I/O (loading files) and CPU (Aho-Corasick build) are done here.
	moderator, err := c.prepareModeration("wordlists")
	if err != nil {
		return err
	}

	fanoutWorker, newSinks := c.preparePipeline()
	telemetryWorker := c.prepareTelemetry()
	capacityWorker := workers.NewChannelCapacityWorker(c.log,
		[]workers.NamedChannel{
			{Name: "outbox", Channel: c.outbox},
			{Name: "telemetry", Channel: c.telemetryChan},
		},
		c.telemetryChan, c.metricInterval)
	resourceWorker := workers.NewResourceSampler(c.log, c.telemetryChan, c.metricInterval)

	// 2. Critical Section (Short Lock)
	// We only lock to update the internal state and the supervisor.
	c.mu.Lock()
	c.moderator = moderator
	c.permanentSinks = append(c.permanentSinks, newSinks...)
	c.supervisor.Add(fanoutWorker, telemetryWorker, capacityWorker, resourceWorker)
	c.mu.Unlock()

	// 3. Execution phase (No Lock)
	c.log.Info("Starting coordinator and all supervised workers")
	c.supervisor.Run(ctx)
	return nil
}

// prepareModeration loads the name wordlists and builds the Aho-Corasick automaton.
func (c *Coordinator) prepareModeration(path string) (*moderation.Moderator, error) {
	loader := NewWordlistLoader(wordlistsFolder)
	data, err := loader.LoadAll(path)
	if err != nil {
		return nil, err
	}

	c.log.Info(fmt.Sprintf("%d wordlist files loaded [%s]",
		len(data.Sources), strings.Join(data.Sources, ",")))
	c.log.Info(fmt.Sprintf("%d unique reserved words loaded", len(data.Words)))

	moderator, err := moderation.NewModerator(data.Words, c.charReplacement, c.log)
	if err != nil {
		return nil, err
	}
	return &moderator, nil
}

// preparePipeline initializes the journal sink and the fanout worker.
func (c *Coordinator) preparePipeline() (contract.Worker, []contract.EventSink) {
	newSinks := []contract.EventSink{
		sink.NewJournalSink(c.journal, c.log),
	}

	// The fanout snapshots the permanent sinks known at start time.
	allSinks := append(c.permanentSinks, newSinks...)

	fanoutWorker := workers.NewEventFanout(
		c.log,
		allSinks,
		c.registry,
		c.outbox,
		c.telemetryChan,
		c.sinkTimeout,
	)

	return fanoutWorker, newSinks
}

// prepareTelemetry assembles the handler chain draining the telemetry channel.
func (c *Coordinator) prepareTelemetry() contract.Worker {
	handlers := []event.Handler{
		event.NewChannelCapacityHandler(c.log, c.lowCapacityThreshold),
		event.NewWorkerRestartedAfterPanicHandler(c.log, event.NewCounter()),
		event.NewResourceSampleHandler(c.log, c.monitoring),
		event.NewDeliveryReportHandler(c.log, c.monitoring, c.latencyThreshold),
	}
	return workers.NewTelemetryWorker(c.log, c.telemetryChan, handlers)
}

// Stop initiates a graceful shutdown of the coordinator.
// It cancels the supervision context to signal workers to stop.
func (c *Coordinator) Stop() {
	c.log.Info("Requesting coordinator shutdown")
	c.supervisor.Stop()
}
