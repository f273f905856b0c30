package test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/crazinneeees/svetofor/infrastructure/ws"
	"github.com/crazinneeees/svetofor/observability"
	"github.com/crazinneeees/svetofor/projection"
	"github.com/crazinneeees/svetofor/repositories"
	"github.com/crazinneeees/svetofor/runtime"
	"github.com/crazinneeees/svetofor/runtime/workers"
	"github.com/crazinneeees/svetofor/services"
	"github.com/crazinneeees/svetofor/sink"
)

// readFrame blocks for the next frame with a deadline so a missing
// broadcast fails the test instead of hanging it.
func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame map[string]any
	require.NoError(t, json.Unmarshal(raw, &frame))
	return frame
}

func Test_Scenario(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	// Reduced to 16 Mo for testing (avoid 20 Go of storage)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	telemetryChan := make(chan event.Event, 64)
	supervisor := workers.NewSupervisor(log, telemetryChan, 200*time.Millisecond)
	registry := runtime.NewRegistry()
	journal := repositories.NewTransitionRepository(db, blugeWriter, log, lo.ToPtr(100))
	monitoring := observability.NewMonitoringManager(log)

	coordinator := runtime.NewCoordinator(
		log, supervisor, registry, journal, monitoring, telemetryChan,
		64,
		3*time.Second, 500*time.Millisecond, 100*time.Millisecond,
		10,
		'*',
	)

	timeline := projection.NewTimeline(10)
	coordinator.Add(timeline, sink.NewMonitoringSink(monitoring))

	go func() {
		_ = coordinator.Start(ctx)
	}()

	service := services.NewSignalService(coordinator)
	server := ws.NewServer(log, service, monitoring, 16, 30*time.Second)
	mux := http.NewServeMux()
	server.Routes(mux)
	ts := httptest.NewServer(mux)

	// Clean everything at the end of the test
	t.Cleanup(func() {
		ts.Close()
		coordinator.Stop()
		_ = blugeWriter.Close()
		_ = db.Close()
	})

	wsBase := "ws" + strings.TrimPrefix(ts.URL, "http")

	// When alice joins first
	alice, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws/alice", nil)
	req.NoError(err)

	// Then she is handed control of a dark lamp
	frame := readFrame(t, alice)
	req.Equal("state_update", frame["type"])
	req.Equal("none", frame["color"])
	req.Equal(true, frame["is_controller"])
	req.Equal("alice", frame["controller_id"])

	frame = readFrame(t, alice)
	req.Equal("user_update", frame["type"])
	req.EqualValues(1, frame["total_users"])

	// When bob joins second
	bob, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws/bob", nil)
	req.NoError(err)

	// Then he only watches
	frame = readFrame(t, bob)
	req.Equal("state_update", frame["type"])
	req.Equal(false, frame["is_controller"])
	req.Equal("alice", frame["controller_id"])

	frame = readFrame(t, bob)
	req.Equal("user_update", frame["type"])
	req.EqualValues(2, frame["total_users"])

	frame = readFrame(t, alice)
	req.Equal("user_update", frame["type"])
	req.EqualValues(2, frame["total_users"])

	// When the controller switches the lamp to red
	req.NoError(alice.WriteJSON(map[string]string{"type": "color_change", "color": "red"}))

	// Then everyone sees the transition
	for _, conn := range []*websocket.Conn{alice, bob} {
		frame = readFrame(t, conn)
		req.Equal("color_change", frame["type"])
		req.Equal("red", frame["color"])
	}

	// And the transition reaches the journal and the timeline
	req.Eventually(func() bool {
		stored, _, err := journal.Recent(nil)
		return err == nil && len(stored) == 1
	}, 2*time.Second, 50*time.Millisecond, "Transition has never reached the journal")

	req.Eventually(func() bool {
		return len(timeline.Recent()) == 1
	}, 2*time.Second, 50*time.Millisecond, "Transition has never reached the timeline")

	stored, cursor, err := journal.Recent(nil)
	req.NoError(err)
	req.Nil(cursor)
	req.Equal("red", stored[0].Color)
	req.Equal("alice", stored[0].Actor)

	// When the controller disconnects
	req.NoError(alice.Close())

	// Then the earliest survivor inherits control with the color preserved
	frame = readFrame(t, bob)
	req.Equal("state_update", frame["type"])
	req.Equal(true, frame["is_controller"])
	req.Equal("red", frame["color"])
	req.Equal("bob", frame["controller_id"])

	frame = readFrame(t, bob)
	req.Equal("user_update", frame["type"])
	req.EqualValues(1, frame["total_users"])
	req.Equal("bob", frame["controller_id"])

	req.NoError(bob.Close())
}
