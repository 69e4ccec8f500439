// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// stubFetcher serves canned bodies and errors per source name, recording
// the order of fetches.
type stubFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	errs   map[string]error
	calls  []string
}

func (f *stubFetcher) Fetch(_ context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	body, ok := f.bodies[name]
	if !ok {
		return nil, fmt.Errorf("fetch %q: no such source", name)
	}
	return []byte(body), nil
}

func (f *stubFetcher) callOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// blockingFetcher parks every fetch until released, for exercising the
// single-flight guard. It signals on entered when a fetch begins.
type blockingFetcher struct {
	entered chan struct{}
	release chan struct{}
}

func (f *blockingFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	f.entered <- struct{}{}
	<-f.release
	return []byte(""), nil
}

// recordingNotifier collects broadcast states in order.
type recordingNotifier struct {
	mu     sync.Mutex
	states []State
}

func (n *recordingNotifier) NotifyCatalogState(status Status) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.states = append(n.states, status.State)
}

func (n *recordingNotifier) sequence() []State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]State(nil), n.states...)
}

const (
	itemFixture = "1|Alpha|0|1|1\n2|Beta|1|0|0\n3|Gamma|0|0|1"
	dataFixture = "196\t242\t3\t881250949\n186\t302\t3\t891717742"
)

func newTestStore(f Fetcher) *Store {
	return NewStore(f, zerolog.Nop())
}

func TestStoreLoadSuccess(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		SourceMovies:  itemFixture,
		SourceRatings: dataFixture,
	}}
	store := newTestStore(fetcher)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	snap := store.Snapshot()
	if snap.Len() != 3 {
		t.Errorf("snapshot has %d movies, want 3", snap.Len())
	}
	if got := len(store.Ratings()); got != 2 {
		t.Errorf("store holds %d ratings, want 2", got)
	}

	m, ok := snap.Get(2)
	if !ok {
		t.Fatal("movie 2 not found after load")
	}
	if m.Title != "Beta" {
		t.Errorf("movie 2 title = %q, want %q", m.Title, "Beta")
	}

	status := store.Status()
	if status.State != StateReady {
		t.Errorf("state = %v, want %v", status.State, StateReady)
	}
	if status.Movies != 3 || status.Ratings != 2 {
		t.Errorf("status counts = %d/%d, want 3/2", status.Movies, status.Ratings)
	}
	if !store.Ready() {
		t.Error("Ready() = false after successful load")
	}

	if got := fetcher.callOrder(); len(got) != 2 || got[0] != SourceMovies || got[1] != SourceRatings {
		t.Errorf("fetch order = %v, want [%s %s]", got, SourceMovies, SourceRatings)
	}
}

func TestStoreReloadReplacesContents(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		SourceMovies:  itemFixture,
		SourceRatings: dataFixture,
	}}
	store := newTestStore(fetcher)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}

	// Shrink both sources and reload; nothing from the first load may
	// survive, and nothing may be duplicated.
	fetcher.mu.Lock()
	fetcher.bodies[SourceMovies] = "9|Replacement|1|0|0"
	fetcher.bodies[SourceRatings] = "1\t9\t5\t900000000"
	fetcher.mu.Unlock()

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}

	snap := store.Snapshot()
	if snap.Len() != 1 {
		t.Fatalf("snapshot has %d movies after reload, want 1", snap.Len())
	}
	if _, ok := snap.Get(1); ok {
		t.Error("movie 1 from first load still present after reload")
	}
	if m, ok := snap.Get(9); !ok || m.Title != "Replacement" {
		t.Errorf("movie 9 = %+v (found=%v), want Replacement", m, ok)
	}
	if got := len(store.Ratings()); got != 1 {
		t.Errorf("store holds %d ratings after reload, want 1", got)
	}
}

func TestStoreLoadFirstSourceFailure(t *testing.T) {
	fetchErr := errors.New(`fetch "u.item": status 503`)
	fetcher := &stubFetcher{
		bodies: map[string]string{SourceRatings: dataFixture},
		errs:   map[string]error{SourceMovies: fetchErr},
	}
	store := newTestStore(fetcher)

	err := store.Load(context.Background())
	if err == nil {
		t.Fatal("Load() error = nil, want failure")
	}
	if !errors.Is(err, fetchErr) {
		t.Errorf("Load() error = %v, want wrapped %v", err, fetchErr)
	}
	if !strings.Contains(err.Error(), "u.item") {
		t.Errorf("error %q does not identify the failing source", err)
	}

	// Fail fast: the ratings source must never be fetched.
	if got := fetcher.callOrder(); len(got) != 1 || got[0] != SourceMovies {
		t.Errorf("fetch order = %v, want [%s]", got, SourceMovies)
	}

	status := store.Status()
	if status.State != StateFailed {
		t.Errorf("state = %v, want %v", status.State, StateFailed)
	}
	if status.LastError == "" {
		t.Error("status.LastError empty, want failure cause")
	}
}

func TestStoreLoadSecondSourceFailureKeepsPreviousCatalog(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		SourceMovies:  itemFixture,
		SourceRatings: dataFixture,
	}}
	store := newTestStore(fetcher)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}

	// Second load: movies fetch succeeds with new content, ratings fetch
	// fails. The previously served catalog must remain fully intact;
	// movies and ratings swap together or not at all.
	fetcher.mu.Lock()
	fetcher.bodies[SourceMovies] = "9|Replacement|1|0|0"
	fetcher.errs = map[string]error{SourceRatings: errors.New(`fetch "u.data": status 404`)}
	fetcher.mu.Unlock()

	err := store.Load(context.Background())
	if err == nil {
		t.Fatal("Load() error = nil, want failure")
	}
	if !strings.Contains(err.Error(), "u.data") {
		t.Errorf("error %q does not identify the failing source", err)
	}

	snap := store.Snapshot()
	if snap.Len() != 3 {
		t.Errorf("snapshot has %d movies, want previous 3", snap.Len())
	}
	if _, ok := snap.Get(9); ok {
		t.Error("partially loaded movie visible after aborted load")
	}
	if got := len(store.Ratings()); got != 2 {
		t.Errorf("store holds %d ratings, want previous 2", got)
	}

	status := store.Status()
	if status.State != StateFailed {
		t.Errorf("state = %v, want %v", status.State, StateFailed)
	}
	if status.Movies != 3 {
		t.Errorf("status.Movies = %d, want previous 3", status.Movies)
	}
}

func TestStoreLoadSingleFlight(t *testing.T) {
	fetcher := &blockingFetcher{
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	store := newTestStore(fetcher)

	done := make(chan error, 1)
	go func() {
		done <- store.Load(context.Background())
	}()

	// Wait until the first load is parked inside the fetcher.
	<-fetcher.entered

	if err := store.Load(context.Background()); !errors.Is(err, ErrLoadInProgress) {
		t.Errorf("overlapping Load() error = %v, want ErrLoadInProgress", err)
	}

	close(fetcher.release)
	if err := <-done; err != nil {
		t.Errorf("first Load() error = %v, want nil", err)
	}
}

func TestStoreNotifierSequence(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		SourceMovies:  itemFixture,
		SourceRatings: dataFixture,
	}}
	store := newTestStore(fetcher)
	notifier := &recordingNotifier{}
	store.SetNotifier(notifier)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := notifier.sequence()
	want := []State{StateLoading, StateReady}
	if len(got) != len(want) {
		t.Fatalf("notifier saw %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStoreParseReportsInStatus(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		SourceMovies:  "1|Good|1\nbroken\n2|Also Good|1",
		SourceRatings: "196\t242\t3\t881250949\nshort\tline",
	}}
	store := newTestStore(fetcher)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	status := store.Status()
	if status.MovieReport.Parsed != 2 {
		t.Errorf("MovieReport.Parsed = %d, want 2", status.MovieReport.Parsed)
	}
	if got := status.MovieReport.SkippedLines; len(got) != 1 || got[0] != 2 {
		t.Errorf("MovieReport.SkippedLines = %v, want [2]", got)
	}
	if status.RatingReport.Parsed != 1 {
		t.Errorf("RatingReport.Parsed = %d, want 1", status.RatingReport.Parsed)
	}
	if got := status.RatingReport.SkippedLines; len(got) != 1 || got[0] != 2 {
		t.Errorf("RatingReport.SkippedLines = %v, want [2]", got)
	}
}

func TestSnapshotDuplicateIDsFirstWins(t *testing.T) {
	snap := NewSnapshot([]Movie{
		{ID: 1, Title: "First"},
		{ID: 1, Title: "Shadowed"},
		{ID: 2, Title: "Other"},
	})

	m, ok := snap.Get(1)
	if !ok {
		t.Fatal("movie 1 not found")
	}
	if m.Title != "First" {
		t.Errorf("Get(1).Title = %q, want %q (first occurrence wins)", m.Title, "First")
	}
	if snap.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (duplicates stay visible)", snap.Len())
	}
}

func TestStoreBeforeFirstLoad(t *testing.T) {
	store := newTestStore(&stubFetcher{})

	if store.Ready() {
		t.Error("Ready() = true before any load")
	}
	if snap := store.Snapshot(); snap == nil || snap.Len() != 0 {
		t.Errorf("Snapshot() = %v, want empty non-nil", snap)
	}
	if status := store.Status(); status.State != StateIdle {
		t.Errorf("state = %v, want %v", status.State, StateIdle)
	}
}
