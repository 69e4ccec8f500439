// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

func newMemoryCache(t *testing.T, inner Fetcher) *CachedFetcher {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open in-memory badger: %v", err)
	}

	c := NewCachedFetcher(inner, db, zerolog.Nop())
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("close cache: %v", err)
		}
	})
	return c
}

func TestCachedFetcherServesLastGoodCopy(t *testing.T) {
	inner := &flakyFetcher{body: []byte("1|Alpha|0|1\n")}
	c := newMemoryCache(t, inner)

	got, err := c.Fetch(context.Background(), "u.item")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(got) != "1|Alpha|0|1\n" {
		t.Fatalf("Fetch() body = %q, want upstream copy", got)
	}

	// Upstream dies; the cached copy keeps the fetch alive
	inner.failing = true
	got, err = c.Fetch(context.Background(), "u.item")
	if err != nil {
		t.Fatalf("Fetch() with dead upstream error = %v, want cached copy", err)
	}
	if string(got) != "1|Alpha|0|1\n" {
		t.Errorf("Fetch() body = %q, want last good copy", got)
	}
}

func TestCachedFetcherMissPassesThroughError(t *testing.T) {
	inner := &flakyFetcher{failing: true}
	c := newMemoryCache(t, inner)

	_, err := c.Fetch(context.Background(), "u.item")
	if !errors.Is(err, errUpstreamDown) {
		t.Errorf("Fetch() error = %v, want upstream error when nothing cached", err)
	}
}

func TestCachedFetcherKeepsNewestCopy(t *testing.T) {
	inner := &flakyFetcher{body: []byte("v1")}
	c := newMemoryCache(t, inner)

	if _, err := c.Fetch(context.Background(), "u.data"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	inner.body = []byte("v2")
	if _, err := c.Fetch(context.Background(), "u.data"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	inner.failing = true
	got, err := c.Fetch(context.Background(), "u.data")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("Fetch() body = %q, want the newest copy v2", got)
	}
}

func TestCachedFetcherScopesCopiesByName(t *testing.T) {
	inner := &flakyFetcher{body: []byte("movies")}
	c := newMemoryCache(t, inner)

	if _, err := c.Fetch(context.Background(), "u.item"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	inner.failing = true

	if _, err := c.Fetch(context.Background(), "u.item"); err != nil {
		t.Errorf("Fetch(u.item) error = %v, want cached copy", err)
	}
	if _, err := c.Fetch(context.Background(), "u.data"); !errors.Is(err, errUpstreamDown) {
		t.Errorf("Fetch(u.data) error = %v, want upstream error (never cached)", err)
	}
}

func TestCachedFetcherPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source-cache")

	db, err := OpenCacheDB(path)
	if err != nil {
		t.Fatalf("OpenCacheDB() error = %v", err)
	}

	inner := &flakyFetcher{body: []byte("196\t242\t3\t881250949\n")}
	c := NewCachedFetcher(inner, db, zerolog.Nop())

	if _, err := c.Fetch(context.Background(), "u.data"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Simulated restart with the upstream down
	db, err = OpenCacheDB(path)
	if err != nil {
		t.Fatalf("OpenCacheDB() reopen error = %v", err)
	}
	inner.failing = true
	c = NewCachedFetcher(inner, db, zerolog.Nop())
	defer func() {
		if err := c.Close(); err != nil {
			t.Errorf("close cache: %v", err)
		}
	}()

	got, err := c.Fetch(context.Background(), "u.data")
	if err != nil {
		t.Fatalf("Fetch() after reopen error = %v, want persisted copy", err)
	}
	if string(got) != "196\t242\t3\t881250949\n" {
		t.Errorf("Fetch() body = %q, want persisted copy", got)
	}
}
