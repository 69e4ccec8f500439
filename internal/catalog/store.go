// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemap/cinemap/internal/metrics"
)

// ErrLoadInProgress is returned when Load is called while another load is
// still in flight. Loads are single-flight; callers retry after the current
// one settles.
var ErrLoadInProgress = errors.New("catalog load already in progress")

// Fetcher retrieves a raw source text by name. Implementations live in
// internal/source; the store only cares that a fetch either yields the full
// body or an error identifying the failing source.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// StateNotifier receives catalog status transitions. The WebSocket hub
// implements this to push load-state changes to connected clients.
type StateNotifier interface {
	NotifyCatalogState(status Status)
}

// Snapshot is an immutable view of the movie collection produced by one
// load. Handlers and the recommendation engine read snapshots, so an
// in-flight reload never mutates data under a request.
type Snapshot struct {
	movies []Movie
	byID   map[int]int
}

// NewSnapshot builds a snapshot over the given movies. Duplicate IDs are
// resolved first-occurrence-wins for lookup, matching the linear-scan
// semantics of the source format; all rows remain visible in Movies.
func NewSnapshot(movies []Movie) *Snapshot {
	byID := make(map[int]int, len(movies))
	for i, m := range movies {
		if _, ok := byID[m.ID]; !ok {
			byID[m.ID] = i
		}
	}
	return &Snapshot{movies: movies, byID: byID}
}

// Movies returns the movie collection in catalog order. The returned slice
// is shared and must not be modified.
func (s *Snapshot) Movies() []Movie {
	return s.movies
}

// Get returns the first movie with the given id.
func (s *Snapshot) Get(id int) (Movie, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Movie{}, false
	}
	return s.movies[i], true
}

// Len returns the number of movies in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.movies)
}

// Store owns the catalog collections and their load lifecycle.
//
// A load fetches and parses both sources, then swaps the collections in one
// step: either both replace the previous contents or, on a mid-sequence
// retrieval failure, neither does and the previous catalog keeps serving.
// Reads go through Snapshot and are safe concurrently with a load.
type Store struct {
	fetcher  Fetcher
	logger   zerolog.Logger
	notifier StateNotifier

	// loading makes Load single-flight without holding mu across I/O.
	loading atomic.Bool

	mu           sync.RWMutex
	snap         *Snapshot
	ratings      []Rating
	movieReport  Report
	ratingReport Report
	state        State
	lastErr      error
	loadedAt     time.Time
	loadDur      time.Duration
}

// NewStore creates a catalog store reading from the given fetcher.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(fetcher Fetcher, logger zerolog.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		logger:  logger.With().Str("component", "catalog").Logger(),
		snap:    NewSnapshot(nil),
		state:   StateIdle,
	}
}

// SetNotifier registers a notifier for state transitions. Must be called
// before the first Load; typically wired in main.
func (s *Store) SetNotifier(n StateNotifier) {
	s.notifier = n
}

// Load fetches both sources and replaces the catalog contents wholesale.
// It serves the initial load and every reload; re-invoking it leaves no
// stale entries from the previous catalog.
//
// The movie source is fetched and parsed before the ratings source is
// touched. The first unsuccessful retrieval aborts the load with an error
// identifying the failing source, and the previously served collections
// stay intact.
func (s *Store) Load(ctx context.Context) error {
	if !s.loading.CompareAndSwap(false, true) {
		return ErrLoadInProgress
	}
	defer s.loading.Store(false)

	s.transition(StateLoading, nil)
	start := time.Now()

	itemText, err := s.fetcher.Fetch(ctx, SourceMovies)
	if err != nil {
		return s.fail(start, fmt.Errorf("load movies: %w", err))
	}
	movies, movieReport := ParseMovies(string(itemText))

	dataText, err := s.fetcher.Fetch(ctx, SourceRatings)
	if err != nil {
		return s.fail(start, fmt.Errorf("load ratings: %w", err))
	}
	ratings, ratingReport := ParseRatings(string(dataText))

	snap := NewSnapshot(movies)
	duration := time.Since(start)

	s.mu.Lock()
	s.snap = snap
	s.ratings = ratings
	s.movieReport = movieReport
	s.ratingReport = ratingReport
	s.state = StateReady
	s.lastErr = nil
	s.loadedAt = time.Now()
	s.loadDur = duration
	s.mu.Unlock()

	metrics.RecordCatalogLoad("success", duration)
	metrics.RecordParseSkips(SourceMovies, movieReport.Skipped())
	metrics.RecordParseSkips(SourceRatings, ratingReport.Skipped())
	metrics.SetCatalogSize(len(movies), len(ratings))

	s.logger.Info().
		Int("movies", len(movies)).
		Int("ratings", len(ratings)).
		Int("movie_skips", movieReport.Skipped()).
		Int("rating_skips", ratingReport.Skipped()).
		Dur("duration", duration).
		Msg("catalog loaded")

	s.notify()
	return nil
}

// fail records a load failure and returns the error unchanged. The
// collections from the previous successful load are left untouched.
func (s *Store) fail(start time.Time, err error) error {
	duration := time.Since(start)

	s.mu.Lock()
	s.state = StateFailed
	s.lastErr = err
	s.loadDur = duration
	s.mu.Unlock()

	metrics.RecordCatalogLoad("failure", duration)

	s.logger.Error().Err(err).Dur("duration", duration).Msg("catalog load failed")

	s.notify()
	return err
}

// transition updates the lifecycle state and broadcasts it.
func (s *Store) transition(state State, err error) {
	s.mu.Lock()
	s.state = state
	s.lastErr = err
	s.mu.Unlock()
	s.notify()
}

// notify pushes the current status to the registered notifier, if any.
func (s *Store) notify() {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyCatalogState(s.Status())
}

// Snapshot returns the currently served movie collection. Never nil; before
// the first successful load it is empty.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Ratings returns the currently served ratings log. The returned slice is
// shared and must not be modified. Scoring never reads it; it exists for
// status reporting and parity with the source format.
func (s *Store) Ratings() []Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ratings
}

// Status returns a point-in-time view of the load lifecycle.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		State:          s.state,
		Movies:         len(s.snap.movies),
		Ratings:        len(s.ratings),
		MovieReport:    s.movieReport,
		RatingReport:   s.ratingReport,
		LoadDurationMS: s.loadDur.Milliseconds(),
	}
	if !s.loadedAt.IsZero() {
		loadedAt := s.loadedAt
		status.LoadedAt = &loadedAt
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	return status
}

// Ready reports whether the catalog has completed at least one successful
// load and is serving.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateReady
}
