package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"github.com/crazinneeees/svetofor/internal"
	"github.com/crazinneeees/svetofor/repositories"
)

func main() {
	// 1. Load config
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// 2. Open Badger in Read-Only mode
	// Note: BypassLockGuard allows opening if another process (Master) holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// 3. Start Debug Server Only
	// We provide stale-free stats since the coordinator isn't running here
	viewerStats := func() map[string]any {
		return map[string]any{
			"Status": "Viewer Mode (Read-Only)",
			"Time":   time.Now().Format(time.RFC822),
		}
	}

	fmt.Printf("🌐 Viewer started at http://localhost:%d/inspect\n", config.DebugPort)
	internal.StartDebugServer(db, config.DebugPort, "/inspect", TransitionMapper, viewerStats)

	// The debug server runs in a background goroutine, so block until interrupted.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}

// Copy of the Master's TransitionMapper to keep the viewer independent
func TransitionMapper(key string, val []byte) internal.InspectRow {
	row := internal.DefaultMapper(key, val)

	var transition repositories.StoredTransition
	if err := json.Unmarshal(val, &transition); err != nil {
		return row
	}

	row.Type = "TRANSITION"
	row.Color = transition.Color
	row.Actor = transition.Actor
	row.Detail = fmt.Sprintf("%s switched the signal to %s", transition.Actor, transition.Color)
	return row
}
