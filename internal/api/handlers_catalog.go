// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cinemap/cinemap/internal/catalog"
	"github.com/cinemap/cinemap/internal/models"
	"github.com/cinemap/cinemap/internal/source"
)

// Movies returns the movie selection list in catalog order.
//
// Query parameters:
//   - genre: restrict the list to movies carrying the vocabulary genre
//   - limit: page size after filtering (0 = everything)
//   - offset: entries to skip after filtering
//
// The response Count is the filtered total and Total the unfiltered catalog
// size, so clients can page without a second request.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	if !h.serving() {
		respondError(w, http.StatusServiceUnavailable, "CATALOG_NOT_READY", "Catalog has not completed a load yet", nil)
		return
	}

	req := MoviesRequest{
		Genre:  r.URL.Query().Get("genre"),
		Limit:  getIntParam(r, "limit", 0),
		Offset: getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	snap := h.store.Snapshot()
	all := snap.Movies()

	filtered := all
	if req.Genre != "" {
		filtered = make([]catalog.Movie, 0, len(all))
		for _, m := range all {
			if m.HasGenre(req.Genre) {
				filtered = append(filtered, m)
			}
		}
	}

	page := filtered
	if req.Offset > 0 {
		if req.Offset >= len(page) {
			page = nil
		} else {
			page = page[req.Offset:]
		}
	}
	if req.Limit > 0 && req.Limit < len(page) {
		page = page[:req.Limit]
	}

	movies := make([]models.MovieSummary, 0, len(page))
	for _, m := range page {
		movies = append(movies, models.MovieSummary{ID: m.ID, Title: m.Title})
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.MovieList{
			Movies: movies,
			Count:  len(filtered),
			Total:  snap.Len(),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// CatalogStatus returns the load lifecycle status: current state, collection
// sizes, parse reports with skipped line numbers, last load time and
// duration, and the failure cause when the last load aborted.
func (h *Handler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.store.Status(),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// CatalogReload runs a synchronous catalog reload and returns the resulting
// status. A reload replaces both collections wholesale; a failed reload
// leaves the previously served catalog intact.
//
// Responses:
//   - 200: reload completed, body carries the fresh catalog status
//   - 409 RELOAD_IN_PROGRESS: another load is already running
//   - 502 SOURCE_FAILED: upstream retrieval failed, message names the source
func (h *Handler) CatalogReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	if err := h.store.Load(r.Context()); err != nil {
		if errors.Is(err, catalog.ErrLoadInProgress) {
			respondError(w, http.StatusConflict, "RELOAD_IN_PROGRESS", "A catalog load is already running", nil)
			return
		}

		message := "Catalog source fetch failed"
		var statusErr *source.StatusError
		if errors.As(err, &statusErr) {
			message = fmt.Sprintf("Source %q returned status %d", statusErr.Source, statusErr.StatusCode)
		}
		respondError(w, http.StatusBadGateway, "SOURCE_FAILED", message, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.store.Status(),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
