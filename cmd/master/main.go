package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/crazinneeees/svetofor/infrastructure/ws"
	"github.com/crazinneeees/svetofor/internal"
	"github.com/crazinneeees/svetofor/observability"
	"github.com/crazinneeees/svetofor/projection"
	"github.com/crazinneeees/svetofor/repositories"
	"github.com/crazinneeees/svetofor/runtime"
	"github.com/crazinneeees/svetofor/runtime/workers"
	"github.com/crazinneeees/svetofor/services"
	"github.com/crazinneeees/svetofor/sink"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Master terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and background workers.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return exitConfig, fmt.Errorf("config validation failed: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx := context.Background()

	// 2. Storage (BadgerDB & Bluge)
	options := buildBadgerOpts(config, logger, ctx)

	db, err := badger.Open(options)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeCfg := bluge.DefaultConfig(config.BlugeFilepath)
	blugeWriter, err := bluge.OpenWriter(blugeCfg)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Supervision & Coordination
	telemetryChan := make(chan event.Event, config.BufferSize)
	sup := workers.NewSupervisor(logger, telemetryChan, config.RestartInterval)
	registry := runtime.NewRegistry()
	journal := repositories.NewTransitionRepository(db, blugeWriter, logger, config.LimitTransitions)
	monitoring := observability.NewMonitoringManager(logger)

	coordinator := runtime.NewCoordinator(
		logger, sup, registry, journal, monitoring, telemetryChan,
		config.BufferSize,
		config.SinkTimeout, config.MetricInterval, config.LatencyThreshold,
		config.LowCapacityThreshold,
		charReplacement,
	)

	timeline := projection.NewTimeline(config.HistorySize)
	coordinator.Add(timeline, sink.NewMonitoringSink(monitoring))

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		url := fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint)
		logger.Info("Debug journal inspector available", "url", url)
		internal.StartDebugServer(db, config.DebugPort, endpoint, TransitionMapper, func() map[string]any {
			stats := monitoring.GetLatest()
			return map[string]any{
				"Sessions":  stats.CurrentSessions,
				"Connected": stats.TotalConnected,
				"Changes":   stats.ColorChanges,
				"Rejected":  stats.Rejections,
				"Timeline":  len(timeline.Recent()),
			}
		})
	}

	service := services.NewSignalService(coordinator)
	wsServer := ws.NewServer(logger, service, monitoring, config.ConnectionBufferSize, config.PingInterval)

	// 4. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Error (HTTP & Coordinator)
	errChan := make(chan error, 2)

	// 5. Start the Engine (Workers and Fanout)
	go func() {
		logger.Info("Starting coordinator...")
		if err := coordinator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("coordinator error: %w", err)
		}
	}()

	// 6. HTTP Server Setup
	mux := http.NewServeMux()
	wsServer.Routes(mux)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:    address,
		Handler: mux,
	}

	// Use an error channel to capture ListenAndServe() issues asynchronously.
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	// The execution blocks here until either a signal is received or the server crashes.
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Final Cleanup (Graceful Shutdown)
	// We allow in-flight WebSocket writes to finish and workers to drain their channels.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown incomplete", "error", err)
	}
	coordinator.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}

func TransitionMapper(key string, val []byte) internal.InspectRow {
	row := internal.DefaultMapper(key, val)

	var transition repositories.StoredTransition
	if err := json.Unmarshal(val, &transition); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}

	row.Type = "TRANSITION"
	row.Color = transition.Color
	row.Actor = transition.Actor
	row.Detail = fmt.Sprintf("%s switched the signal to %s", transition.Actor, transition.Color)
	return row
}
