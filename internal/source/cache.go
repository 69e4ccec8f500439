// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/cinemap/cinemap/internal/metrics"
)

// Key prefix for cached source copies in BadgerDB
const cacheKeyPrefix = "source:"

// OpenCacheDB opens (or creates) the BadgerDB holding the last good copy of
// each source resource. The returned handle is passed to NewCachedFetcher
// and must be closed on shutdown.
func OpenCacheDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open source cache: %w", err)
	}
	return db, nil
}

// CachedFetcher decorates a Fetcher with a write-through on-disk copy of
// every successfully fetched resource. When the upstream fails, the last
// good copy is served instead, so a restart next to a dead upstream can
// still bring the catalog up.
type CachedFetcher struct {
	inner  Fetcher
	db     *badger.DB
	logger zerolog.Logger
}

// NewCachedFetcher wraps inner with the cache stored in db.
func NewCachedFetcher(inner Fetcher, db *badger.DB, logger zerolog.Logger) *CachedFetcher {
	return &CachedFetcher{
		inner:  inner,
		db:     db,
		logger: logger.With().Str("component", "source-cache").Logger(),
	}
}

// Fetch delegates to the wrapped fetcher. On success the body is stored as
// the new last good copy; on failure the stored copy is served when one
// exists, otherwise the fetch error passes through unchanged.
func (c *CachedFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	body, err := c.inner.Fetch(ctx, name)
	if err == nil {
		if storeErr := c.store(name, body); storeErr != nil {
			// A broken cache must not fail a healthy fetch
			c.logger.Warn().Err(storeErr).Str("source", name).Msg("Failed to store source copy")
		}
		return body, nil
	}

	cached, lookupErr := c.lookup(name)
	if lookupErr != nil {
		if !errors.Is(lookupErr, badger.ErrKeyNotFound) {
			c.logger.Warn().Err(lookupErr).Str("source", name).Msg("Source cache lookup failed")
		}
		metrics.SourceCacheMisses.WithLabelValues(name).Inc()
		return nil, err
	}

	metrics.SourceCacheHits.WithLabelValues(name).Inc()
	c.logger.Warn().
		Err(err).
		Str("source", name).
		Int("bytes", len(cached)).
		Msg("Upstream unreachable, serving last good copy")
	return cached, nil
}

func (c *CachedFetcher) store(name string, body []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(cacheKeyPrefix+name), body)
	})
}

func (c *CachedFetcher) lookup(name string) ([]byte, error) {
	var body []byte

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKeyPrefix + name))
		if err != nil {
			return err
		}
		body, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

// Close releases the underlying cache database.
func (c *CachedFetcher) Close() error {
	return c.db.Close()
}
