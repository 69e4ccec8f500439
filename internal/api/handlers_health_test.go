// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinemap/cinemap/internal/models"
)

func TestHealth_Healthy(t *testing.T) {
	t.Parallel()

	handler := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeEnvelope(t, rec.Body.Bytes())
	var health models.HealthStatus
	decodeData(t, resp.Data, &health)

	if health.Status != "healthy" {
		t.Errorf("status = %q, want healthy", health.Status)
	}
	if health.CatalogState != "ready" || !health.CatalogReady {
		t.Errorf("catalog state = %q ready=%v, want ready/true", health.CatalogState, health.CatalogReady)
	}
	if health.Movies != 6 || health.Ratings != 4 {
		t.Errorf("movies = %d, ratings = %d, want 6 and 4", health.Movies, health.Ratings)
	}
	if health.Version == "" {
		t.Error("version missing")
	}
	if health.UptimeSeconds < 0 {
		t.Errorf("uptime = %f, want non-negative", health.UptimeSeconds)
	}
}

func TestHealth_DegradedBeforeLoad(t *testing.T) {
	t.Parallel()

	handler := setupIdleHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	// The process answers 200 while degraded; the payload carries the state.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeEnvelope(t, rec.Body.Bytes())
	var health models.HealthStatus
	decodeData(t, resp.Data, &health)

	if health.Status != "degraded" {
		t.Errorf("status = %q, want degraded", health.Status)
	}
	if health.CatalogState != "idle" || health.CatalogReady {
		t.Errorf("catalog state = %q ready=%v, want idle/false", health.CatalogState, health.CatalogReady)
	}
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	// Liveness ignores catalog state entirely.
	handler := setupIdleHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	rec := httptest.NewRecorder()

	handler.HealthLive(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeEnvelope(t, rec.Body.Bytes())
	var data map[string]interface{}
	decodeData(t, resp.Data, &data)

	if alive, ok := data["alive"].(bool); !ok || !alive {
		t.Errorf("alive = %v, want true", data["alive"])
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	t.Run("ready after load", func(t *testing.T) {
		handler := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil)
		rec := httptest.NewRecorder()

		handler.HealthReady(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		resp := decodeEnvelope(t, rec.Body.Bytes())
		if resp.Status != "ready" {
			t.Errorf("envelope status = %q, want ready", resp.Status)
		}
	})

	t.Run("not ready before first load", func(t *testing.T) {
		handler := setupIdleHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil)
		rec := httptest.NewRecorder()

		handler.HealthReady(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}

		resp := decodeEnvelope(t, rec.Body.Bytes())
		if resp.Status != "not_ready" {
			t.Errorf("envelope status = %q, want not_ready", resp.Status)
		}

		var data map[string]interface{}
		decodeData(t, resp.Data, &data)
		if ready, ok := data["ready_to_serve"].(bool); !ok || ready {
			t.Errorf("ready_to_serve = %v, want false", data["ready_to_serve"])
		}
	})
}

func TestHealthEndpoints_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler := setupTestHandler(t)

	endpoints := []struct {
		name string
		fn   http.HandlerFunc
	}{
		{"health", handler.Health},
		{"live", handler.HealthLive},
		{"ready", handler.HealthReady},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/health", nil)
			rec := httptest.NewRecorder()

			ep.fn(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want 405", rec.Code)
			}
		})
	}
}
