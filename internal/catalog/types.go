// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

// Package catalog loads and owns the in-memory movie catalog.
//
// The catalog is built from two flat text sources in the MovieLens 100K
// layout: "u.item" (pipe-delimited movie records with positional genre
// flags) and "u.data" (tab-delimited rating records). Parsing tolerates
// malformed lines by skipping them and recording their line numbers in a
// parse report rather than failing the load.
//
// The Store holds the parsed collections behind an init/reload lifecycle.
// Callers hold a Store handle and read immutable snapshots; there is no
// package-level state.
package catalog

import "time"

// GenreVocabulary is the fixed ordered list of genre names used to decode
// the positional flag columns of the movie source. The trailing flag fields
// of each record align to these names by position.
var GenreVocabulary = [18]string{
	"Action",
	"Adventure",
	"Animation",
	"Children's",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Fantasy",
	"Film-Noir",
	"Horror",
	"Musical",
	"Mystery",
	"Romance",
	"Sci-Fi",
	"Thriller",
	"War",
	"Western",
}

// Source names understood by the retrieval interface. The loader fetches
// them in this order and fails fast on the first unsuccessful retrieval.
const (
	// SourceMovies is the pipe-delimited movie catalog resource.
	SourceMovies = "u.item"

	// SourceRatings is the tab-delimited ratings log resource.
	SourceRatings = "u.data"
)

// Movie is one parsed catalog record.
//
// IDs are assumed unique by the source format but not validated; duplicate
// IDs survive parsing and are resolved first-occurrence-wins at lookup time.
// Genres hold the subset of GenreVocabulary flagged on the record, in
// vocabulary order. A Movie is immutable after load; the only mutation the
// catalog supports is wholesale replacement on reload.
type Movie struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
}

// HasGenre reports whether the movie carries the named genre flag. Names
// are matched exactly against the vocabulary spelling.
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Rating is one parsed ratings-log record.
//
// ItemID references Movie.ID but the reference is not enforced. Ratings are
// loaded and surfaced in catalog status, but recommendation scoring never
// consumes them; Cinemap ranks by genre overlap only.
type Rating struct {
	UserID    int   `json:"user_id"`
	ItemID    int   `json:"item_id"`
	Value     int   `json:"rating"`
	Timestamp int64 `json:"timestamp"`
}

// State describes where the catalog is in its load lifecycle.
type State string

const (
	// StateIdle means no load has been attempted yet.
	StateIdle State = "idle"

	// StateLoading means a load or reload is in flight.
	StateLoading State = "loading"

	// StateReady means both sources parsed and the catalog is serving.
	StateReady State = "ready"

	// StateFailed means the most recent load aborted on a retrieval
	// failure. Any previously loaded catalog remains intact and serving.
	StateFailed State = "failed"
)

// Status is a point-in-time view of the catalog lifecycle for the status
// endpoint and state broadcasts.
type Status struct {
	State State `json:"state"`

	// Movies and Ratings are the sizes of the currently served collections.
	Movies  int `json:"movies"`
	Ratings int `json:"ratings"`

	// MovieReport and RatingReport summarize the parse pass that produced
	// the current collections.
	MovieReport  Report `json:"movie_report"`
	RatingReport Report `json:"rating_report"`

	// LastError is a human-readable cause when State is failed, including
	// the identity of the source that failed.
	LastError string `json:"last_error,omitempty"`

	// LoadedAt is the completion time of the last successful load, nil
	// before the first one.
	LoadedAt       *time.Time `json:"loaded_at,omitempty"`
	LoadDurationMS int64      `json:"load_duration_ms,omitempty"`
}

// Report summarizes one parse pass over a raw source text.
//
// SkippedLines records the 1-based line numbers of malformed lines that the
// parser dropped, so data loss is visible instead of silent.
type Report struct {
	Parsed       int   `json:"parsed"`
	SkippedLines []int `json:"skipped_lines,omitempty"`
}

// Skipped returns the number of lines dropped during the parse pass.
func (r Report) Skipped() int {
	return len(r.SkippedLines)
}
