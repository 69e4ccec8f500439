// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package models

// HealthStatus is the payload of the health endpoint.
//
// Status is "healthy" once the catalog is serving and "degraded" while it is
// idle, loading, or failed. The process stays alive and serves status either
// way; liveness and readiness probes use the dedicated /live and /ready
// endpoints.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	CatalogState  string  `json:"catalog_state"`
	CatalogReady  bool    `json:"catalog_ready"`
	Movies        int     `json:"movies"`
	Ratings       int     `json:"ratings"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
