// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cinemap/cinemap/internal/models"
	"github.com/cinemap/cinemap/internal/recommend"
)

// Recommendations runs the engine for the selected movie and maps the
// outcome kind to an HTTP status:
//
//   - no_selection, invalid_selection: 400 with the matching error code
//   - not_found: 404 MOVIE_NOT_FOUND
//   - no_matches, one_match, two_matches: 200 with the outcome as payload
//
// The raw path segment goes to the engine untouched; selection parsing and
// classification live there, not in the handler.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	if !h.serving() {
		respondError(w, http.StatusServiceUnavailable, "CATALOG_NOT_READY", "Catalog has not completed a load yet", nil)
		return
	}

	selection := chi.URLParam(r, "movieID")

	start := time.Now()
	outcome := h.engine.Recommend(h.store.Snapshot(), selection)

	switch outcome.Kind {
	case recommend.KindNoSelection:
		respondError(w, http.StatusBadRequest, "NO_SELECTION", "No movie selected", nil)
	case recommend.KindInvalidSelection:
		respondError(w, http.StatusBadRequest, "INVALID_SELECTION", "Selection is not a numeric movie ID", nil)
	case recommend.KindNotFound:
		respondError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", fmt.Sprintf("No movie with ID %s in the catalog", selection), nil)
	default:
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data:   outcome,
			Metadata: models.Metadata{
				Timestamp:   time.Now(),
				QueryTimeMS: time.Since(start).Milliseconds(),
			},
		})
	}
}
