// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemap/cinemap/internal/catalog"
)

// CatalogStore defines the interface for the catalog store.
// This allows the service to be tested with a mock store.
type CatalogStore interface {
	// Load fetches and parses the source files, then swaps in the new catalog.
	Load(ctx context.Context) error

	// Ready reports whether a catalog has been loaded at least once.
	Ready() bool
}

// CatalogServiceConfig holds configuration for the catalog loader service.
type CatalogServiceConfig struct {
	// RefreshInterval is how often to re-fetch and re-parse the source
	// files after the startup load. Zero disables periodic refresh;
	// the catalog is then reloaded only on demand.
	RefreshInterval time.Duration

	// LoadTimeout bounds a single load cycle (fetch + parse + swap).
	// Defaults to 2 minutes.
	LoadTimeout time.Duration
}

// CatalogService wraps the catalog store for Suture supervision.
// It performs the startup load and optional periodic refresh.
//
// Until the first load succeeds the service treats a failed load as a
// crash, so the supervisor retries it with backoff. Once a catalog is
// in place a failed refresh is only logged: the previous snapshot keeps
// serving.
type CatalogService struct {
	store  CatalogStore
	config CatalogServiceConfig
	logger zerolog.Logger
	name   string
}

// NewCatalogService creates a new catalog loader service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogService(store CatalogStore, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 2 * time.Minute
	}
	return &CatalogService{
		store:  store,
		config: cfg,
		logger: logger.With().Str("service", "catalog").Logger(),
		name:   "catalog-service",
	}
}

// Serve implements the suture.Service interface.
// It manages the load lifecycle of the catalog store.
func (s *CatalogService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("refresh_interval", s.config.RefreshInterval).
		Msg("catalog service starting")

	if err := s.load(ctx); err != nil {
		if s.store.Ready() {
			// A previous run already populated the store; keep serving it.
			s.logger.Warn().Err(err).Msg("startup load failed (previous catalog retained)")
		} else {
			// Nothing to serve yet. Crash so the supervisor retries with
			// backoff instead of leaving the API permanently empty.
			return fmt.Errorf("startup catalog load: %w", err)
		}
	}

	if s.config.RefreshInterval <= 0 {
		s.logger.Info().Msg("catalog service running (refresh disabled)")
		<-ctx.Done()
		s.logger.Info().Msg("catalog service shutting down")
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	s.logger.Info().Msg("catalog service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled refresh triggered")
			if err := s.load(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled refresh failed (previous catalog retained)")
			}
		}
	}
}

// load performs one load cycle with proper context handling.
func (s *CatalogService) load(ctx context.Context) error {
	loadCtx, cancel := context.WithTimeout(ctx, s.config.LoadTimeout)
	defer cancel()

	start := time.Now()
	s.logger.Info().Msg("loading catalog")

	if err := s.store.Load(loadCtx); err != nil {
		// A concurrent on-demand reload is already doing the work.
		if errors.Is(err, catalog.ErrLoadInProgress) {
			s.logger.Debug().Msg("load skipped: already in progress")
			return nil
		}
		return err
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("catalog load complete")

	return nil
}

// String returns the service name for logging.
func (s *CatalogService) String() string {
	return s.name
}
