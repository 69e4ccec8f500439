// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package recommend

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemap/cinemap/internal/catalog"
	"github.com/cinemap/cinemap/internal/metrics"
)

// Engine computes genre-similarity rankings over catalog snapshots.
//
// The engine holds no catalog state of its own; each call receives the
// snapshot to rank over, so results are a pure function of snapshot and
// selection and a concurrent catalog reload never shifts data under a
// request.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		logger: logger.With().Str("component", "recommend").Logger(),
	}
}

// Recommend resolves a raw selection string against the snapshot and ranks
// all other movies by genre overlap with the selected one.
//
// The selection is trimmed; empty yields KindNoSelection and a non-integer
// yields KindInvalidSelection. A parseable id is delegated to RecommendByID.
func (e *Engine) Recommend(snap *catalog.Snapshot, selection string) Outcome {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return e.observe(Outcome{Kind: KindNoSelection}, time.Now())
	}

	id, err := strconv.Atoi(selection)
	if err != nil {
		return e.observe(Outcome{Kind: KindInvalidSelection}, time.Now())
	}

	return e.RecommendByID(snap, id)
}

// RecommendByID ranks all movies other than the one with the given id.
//
// Candidates are every snapshot row whose id differs from the selection
// (rows duplicating the selected id are all excluded; duplicates among
// candidates all stay in). Candidates are scored with Jaccard over genre
// sets, ordered by score descending with ties broken by case-insensitive
// title ascending, and the top two with a score strictly above zero become
// matches. The ordering is deterministic: identical data always produces
// the identical result.
func (e *Engine) RecommendByID(snap *catalog.Snapshot, id int) Outcome {
	start := time.Now()

	selected, ok := snap.Get(id)
	if !ok {
		return e.observe(Outcome{Kind: KindNotFound}, start)
	}

	candidates := scoreCandidates(snap.Movies(), selected)
	sortCandidates(candidates)

	matches := make([]Match, 0, maxMatches)
	for _, c := range candidates {
		if c.score <= 0 {
			break
		}
		matches = append(matches, Match{
			ID:    c.movie.ID,
			Title: c.movie.Title,
			Score: roundScore(c.score),
		})
		if len(matches) == maxMatches {
			break
		}
	}

	out := Outcome{
		Kind:     shapeKind(len(matches)),
		Selected: &selected,
		Matches:  matches,
	}
	return e.observe(out, start)
}

// observe records metrics and debug logging for a finished outcome.
func (e *Engine) observe(out Outcome, start time.Time) Outcome {
	duration := time.Since(start)
	metrics.RecordRecommendation(string(out.Kind), duration)

	e.logger.Debug().
		Str("kind", string(out.Kind)).
		Int("matches", len(out.Matches)).
		Dur("duration", duration).
		Msg("recommendation computed")

	return out
}

// scoredCandidate pairs a movie with its similarity to the selection.
type scoredCandidate struct {
	movie catalog.Movie
	score float64
}

// scoreCandidates builds the candidate list: every movie except the
// selected one, scored against the selection's genre set.
func scoreCandidates(movies []catalog.Movie, selected catalog.Movie) []scoredCandidate {
	candidates := make([]scoredCandidate, 0, len(movies))
	for _, m := range movies {
		if m.ID == selected.ID {
			continue
		}
		candidates = append(candidates, scoredCandidate{
			movie: m,
			score: Jaccard(selected.Genres, m.Genres),
		})
	}
	return candidates
}

// sortCandidates orders by score descending, then case-insensitive title
// ascending. Stable sort keeps the result deterministic even for candidates
// agreeing on both keys.
func sortCandidates(candidates []scoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return strings.ToLower(candidates[i].movie.Title) < strings.ToLower(candidates[j].movie.Title)
	})
}

// shapeKind maps a match count to its success kind.
func shapeKind(matches int) Kind {
	switch matches {
	case 0:
		return KindNoMatches
	case 1:
		return KindOneMatch
	default:
		return KindTwoMatches
	}
}

// roundScore rounds a similarity to two decimal places for display.
func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
