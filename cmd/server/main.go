// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

// Package main is the entry point for the Tunecarta server.
//
// Tunecarta is a self-hosted listening-history analytics platform with a
// catalog-backed music recommender. Users upload a CSV export of their
// library, explore analytics dashboards over it, and rate a sample of
// catalog tracks to receive nearest-neighbor recommendations.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered loading via Koanf v2 (defaults, file, env)
//  2. Database: DuckDB for listening-history analytics
//  3. Catalog: recommendation artifact loaded under the supervisor tree
//  4. HTTP Server: REST API under a Chi router
//
// The catalog artifact is produced offline by cmd/trainer. A missing or
// corrupt artifact does not prevent startup; analytics endpoints work
// without it and recommendation endpoints answer 503 until a load succeeds.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (HTTP_PORT, DUCKDB_PATH, RECOMMEND_ARTIFACT_PATH, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Checkpoints and closes the database
//
// # Example Usage
//
//	export DUCKDB_PATH=/data/tunecarta.duckdb
//	export RECOMMEND_ARTIFACT_PATH=/data/catalog.json
//	./tunecarta
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tunecarta/tunecarta/internal/api"
	"github.com/tunecarta/tunecarta/internal/config"
	"github.com/tunecarta/tunecarta/internal/database"
	"github.com/tunecarta/tunecarta/internal/logging"
	"github.com/tunecarta/tunecarta/internal/metrics"
	"github.com/tunecarta/tunecarta/internal/recommend"
	"github.com/tunecarta/tunecarta/internal/supervisor"
	"github.com/tunecarta/tunecarta/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("artifact_path", cfg.Recommend.ArtifactPath).
		Msg("Starting Tunecarta")
	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// The handle starts empty; the catalog loader publishes into it once
	// the artifact passes integrity checks.
	handle := recommend.NewHandle()
	tree.AddDataService(services.NewCatalogLoaderService(
		cfg.Recommend.ArtifactPath, cfg.Recommend.Seed, handle))

	handler := api.NewHandler(db, handle, cfg)
	middleware := api.NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, middleware)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
