// Command api is the Scorekeeper API server.
//
// Usage:
//
//	scorekeeper-api
//	API_PORT=8080 STORAGE_DRIVER=memory scorekeeper-api

// @title Scorekeeper API
// @version 1.0.0
// @description Cricket scorekeeping backend: match registry, live-score ingestion from scorer clients, viewer summaries and scorecards.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name VP Sports
// @license.name MIT
// @securityDefinitions.apikey ScorerToken
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vpsports/scorekeeper/internal/api"
	"github.com/vpsports/scorekeeper/internal/api/handler"
	"github.com/vpsports/scorekeeper/internal/config"
	"github.com/vpsports/scorekeeper/internal/fixture"
	"github.com/vpsports/scorekeeper/internal/livescore"
	"github.com/vpsports/scorekeeper/internal/maintenance"
	"github.com/vpsports/scorekeeper/internal/metrics"
	"github.com/vpsports/scorekeeper/internal/scorecard"
	"github.com/vpsports/scorekeeper/internal/store"

	_ "github.com/vpsports/scorekeeper/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	backend, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	var rec *metrics.Recorder
	if cfg.MetricsEnabled {
		rec = metrics.NewRecorder()
	}

	probe := maintenance.DefaultConfig()
	probe.ProbeInterval = cfg.StorageProbeInterval
	go maintenance.Start(ctx, backend, rec, probe, logger)

	renderer, err := scorecard.NewHTMLRenderer()
	if err != nil {
		logger.Error("Failed to load scorecard templates", "error", err)
		os.Exit(1)
	}

	registry := fixture.NewRegistry(backend, logger, rec).WithLocation(cfg.DisplayLocation)
	scores := livescore.NewService(backend, registry, logger, rec)
	h := handler.New(registry, scores, renderer, backend, cfg.StorageDriver, logger)

	// Create router
	router := api.NewRouter(h, cfg, rec, logger)

	// Create HTTP server
	addr := cfg.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scorekeeper API",
			"addr", addr,
			"environment", cfg.Environment,
			"storage", cfg.StorageDriver,
			"scorer_auth", cfg.ScorerAuthEnabled(),
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			cancel()
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
