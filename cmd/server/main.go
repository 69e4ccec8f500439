// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

// Package main is the entry point for the Cinemap server application.
//
// Cinemap is a self-hosted movie recommendation service. It loads a
// pipe-delimited movie catalog and tab-delimited ratings from an upstream
// source, then recommends the movies that share the most genres with a
// selected title, ranked by Jaccard similarity over genre sets.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: zerolog with JSON or console output
//  3. Source chain: HTTP fetcher wrapped in a circuit breaker, with an
//     optional BadgerDB last-good-copy cache
//  4. Catalog store: owns the loaded snapshot, swaps it atomically on reload
//  5. Recommendation engine: stateless genre-overlap scoring
//  6. WebSocket hub: broadcasts catalog state transitions to clients
//  7. Supervisor tree: suture v4 supervision of hub, loader, and HTTP server
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (see internal/config)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// The only required setting is the catalog source:
//
//	export SOURCE_BASE_URL=http://files.grouplens.org/datasets/movielens/ml-100k
//	./cinemap
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes WebSocket clients and the source cache
//   - Reports any services that failed to stop
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinemap/cinemap/internal/api"
	"github.com/cinemap/cinemap/internal/catalog"
	"github.com/cinemap/cinemap/internal/config"
	"github.com/cinemap/cinemap/internal/logging"
	"github.com/cinemap/cinemap/internal/recommend"
	"github.com/cinemap/cinemap/internal/source"
	"github.com/cinemap/cinemap/internal/supervisor"
	"github.com/cinemap/cinemap/internal/supervisor/services"
	ws "github.com/cinemap/cinemap/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Cinemap with supervisor tree")

	logging.Info().
		Str("source_base_url", cfg.Source.BaseURL).
		Bool("source_cache", cfg.Source.CacheEnabled).
		Dur("refresh_interval", cfg.Catalog.RefreshInterval).
		Msg("Configuration loaded")

	// Build the source fetch chain. The circuit breaker sits between the
	// catalog store and the raw HTTP client so a dead upstream fails fast;
	// the optional cache layer serves the last good copy when it trips.
	var fetcher source.Fetcher = source.NewBreakerFetcher(
		source.NewHTTPFetcher(&cfg.Source, logging.Logger()),
	)
	if cfg.Source.CacheEnabled {
		cacheDB, err := source.OpenCacheDB(cfg.Source.CachePath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Source.CachePath).Msg("Failed to open source cache")
		}
		defer func() {
			if err := cacheDB.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing source cache")
			}
		}()
		fetcher = source.NewCachedFetcher(fetcher, cacheDB, logging.Logger())
		logging.Info().Str("path", cfg.Source.CachePath).Msg("Source cache enabled")
	}

	// Catalog store owns the loaded snapshot; the engine reads it per request.
	store := catalog.NewStore(fetcher, logging.Logger())
	engine := recommend.NewEngine(logging.Logger())

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Create WebSocket hub for real-time updates (before the store notifier
	// is wired, so no transition is dropped)
	wsHub := ws.NewHub()
	store.SetNotifier(wsHub)

	handler := api.NewHandler(store, engine, wsHub, cfg)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Messaging layer services
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddMessagingService(services.NewCatalogService(store, services.CatalogServiceConfig{
		RefreshInterval: cfg.Catalog.RefreshInterval,
	}, logging.Logger()))
	logging.Info().Msg("WebSocket hub and catalog loader added to supervisor tree")

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
