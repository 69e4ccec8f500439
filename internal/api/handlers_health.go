// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package api

import (
	"net/http"
	"time"

	"github.com/cinemap/cinemap/internal/catalog"
	"github.com/cinemap/cinemap/internal/models"
)

// serviceVersion is reported by the health endpoint.
const serviceVersion = "1.0.0"

// Health returns a component health summary. The process responds 200
// whenever it is up; the status field distinguishes "healthy" (catalog in
// the ready state) from "degraded" (idle, loading, or failed).
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	st := h.store.Status()

	status := "healthy"
	if st.State != catalog.StateReady {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:        status,
		Version:       serviceVersion,
		CatalogState:  string(st.State),
		CatalogReady:  st.State == catalog.StateReady,
		Movies:        st.Movies,
		Ratings:       st.Ratings,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of catalog state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// The service is ready once the catalog has completed a successful load;
// it stays ready through reloads because the previous catalog keeps
// serving. Returns 503 before the first successful load.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	st := h.store.Status()
	ready := st.LoadedAt != nil

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"catalog_state":  string(st.State),
			"ready_to_serve": ready,
			"movies":         st.Movies,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
