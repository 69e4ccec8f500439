// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

// Package recommend ranks catalog movies by genre similarity to a selected
// movie.
//
// The engine is a pure function of a catalog snapshot and the user's
// selection. Every call produces a tagged Outcome instead of an error:
// failure reasons (no selection, invalid selection, unknown movie) and
// success shapes (zero, one, or two matches) are all outcome kinds, so the
// delivery layer renders by switching on the kind and nothing ever crosses
// the engine boundary as a thrown failure.
package recommend

import "github.com/cinemap/cinemap/internal/catalog"

// maxMatches is the number of recommendations retained. Only candidates
// with a score strictly greater than zero qualify; fewer are returned when
// fewer qualify.
const maxMatches = 2

// Kind tags a recommendation outcome. The three failure kinds cover user
// input; the three success kinds encode the result shape.
type Kind string

const (
	// KindNoSelection means the selection was empty.
	KindNoSelection Kind = "no_selection"

	// KindInvalidSelection means the selection was not a parseable integer.
	KindInvalidSelection Kind = "invalid_selection"

	// KindNotFound means the selected id is absent from the catalog.
	KindNotFound Kind = "not_found"

	// KindNoMatches means the selection was valid but no candidate scored
	// above zero.
	KindNoMatches Kind = "no_matches"

	// KindOneMatch means exactly one candidate qualified.
	KindOneMatch Kind = "one_match"

	// KindTwoMatches means the full complement of candidates qualified.
	KindTwoMatches Kind = "two_matches"
)

// Success reports whether the kind is one of the result shapes rather than
// a failure reason.
func (k Kind) Success() bool {
	switch k {
	case KindNoMatches, KindOneMatch, KindTwoMatches:
		return true
	default:
		return false
	}
}

// Match is one recommended movie. Score is the Jaccard similarity rounded
// to two decimal places, the precision the result is displayed with.
type Match struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Outcome is the tagged result of one recommendation request.
//
// Selected is populated for success kinds only. Matches holds at most
// maxMatches entries, ordered by score descending with ties broken by
// case-insensitive title ascending.
type Outcome struct {
	Kind     Kind           `json:"kind"`
	Selected *catalog.Movie `json:"selected,omitempty"`
	Matches  []Match        `json:"matches,omitempty"`
}
