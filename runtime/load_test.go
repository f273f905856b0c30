package runtime_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crazinneeees/svetofor/domain"
	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/crazinneeees/svetofor/mocks"
	"github.com/crazinneeees/svetofor/observability"
	"github.com/crazinneeees/svetofor/repositories"
	"github.com/crazinneeees/svetofor/runtime"
	"github.com/crazinneeees/svetofor/runtime/workers"
	"go.uber.org/mock/gomock"
)

func TestCoordinator_LoadTest(t *testing.T) {
	// 1. Setup minimaliste (on mock le journal pour ne pas être bridé par le disque/Badger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := gomock.NewController(t)
	mockJournal := mocks.NewMockITransitionRepository(ctrl)
	mockJournal.EXPECT().Store(gomock.Any()).Do(
		func(_ repositories.StoredTransition) {
			time.Sleep(2 * time.Millisecond)
		},
	).Return(nil).AnyTimes()

	connSink := mocks.NewMockEventSink(ctrl)
	connSink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	telemetryChan := make(chan event.Event, 5000)
	log := slog.New(slog.DiscardHandler) // On désactive les logs pour la perf

	supervisor := workers.NewSupervisor(log, telemetryChan, 100*time.Millisecond)
	registry := runtime.NewRegistry()
	monitoring := observability.NewMonitoringManager(log)

	coordinator := runtime.NewCoordinator(
		log, supervisor, registry, mockJournal, monitoring, telemetryChan,
		5000,                 // bufferSize
		100*time.Millisecond, // sinkTimeout
		50*time.Millisecond,  // metric interval
		50*time.Millisecond,  // latency threshold
		10,
		'*',
	)
	go func() {
		if err := coordinator.Start(ctx); err != nil {
			fmt.Printf("Coordinator failed to start: %v\n", err)
		}
	}()
	time.Sleep(100 * time.Millisecond) // Laisse le temps aux workers de démarrer

	// Un seul pilote, le reste observe
	driver, err := coordinator.Connect(ctx, "driver", connSink)
	if err != nil {
		t.Fatalf("connect driver: %v", err)
	}

	numWatchers := 99
	watchers := make([]*domain.Session, 0, numWatchers)
	for i := 0; i < numWatchers; i++ {
		watcher, err := coordinator.Connect(ctx, fmt.Sprintf("watcher-%d", i), connSink)
		if err != nil {
			t.Fatalf("connect watcher %d: %v", i, err)
		}
		watchers = append(watchers, watcher)
	}

	// 2. Variables de mesure
	var acceptedCount atomic.Uint64
	var rejectedCount atomic.Uint64

	numClients := 100
	commandsPerClient := 100
	colors := []string{"red", "yellow", "green", "none"}

	start := time.Now()
	var wg sync.WaitGroup

	// 3. Simulation du trafic (le pilote et les spectateurs commandent en même temps)
	for i := 0; i < numClients; i++ {
		wg.Add(1)
		go func(clientID int) {
			defer wg.Done()
			sessionID := driver.ID
			if clientID%2 == 1 {
				sessionID = watchers[clientID%numWatchers].ID
			}
			for j := 0; j < commandsPerClient; j++ {
				if err := coordinator.SetColor(ctx, sessionID, colors[j%len(colors)]); err != nil {
					rejectedCount.Add(1)
				} else {
					acceptedCount.Add(1)
				}
			}
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)

	// 4. Résultats
	fmt.Printf("\n--- RÉSULTATS DU STRESS TEST ---\n")
	fmt.Printf("Durée totale        : %v\n", duration)
	fmt.Printf("Commandes acceptées : %d\n", acceptedCount.Load())
	fmt.Printf("Commandes rejetées  : %d (Watchers)\n", rejectedCount.Load())
	fmt.Printf("Débit (TPS)         : %.2f cmd/sec\n", float64(acceptedCount.Load())/duration.Seconds())
	fmt.Printf("--------------------------------\n")
}
