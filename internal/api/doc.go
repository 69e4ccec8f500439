// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

// Package api implements the HTTP surface of the recommendation service.
//
// The package is organized by concern:
//
//   - handlers.go: Handler struct, constructor, WebSocket upgrade
//   - handlers_helpers.go: response envelope and logging helpers
//   - handlers_catalog.go: movie listing and catalog lifecycle endpoints
//   - handlers_recommend.go: the recommendation endpoint
//   - handlers_health.go: health and probe endpoints
//   - requests.go: validated query parameter structs
//   - chi_middleware.go: CORS, rate limiting, request ID middleware
//   - router.go: route table and middleware stack
//
// Every endpoint responds with the models.APIResponse envelope: a status
// string, the payload under data, response metadata, and a structured error
// with a machine-readable code when the request fails. Handlers never write
// raw JSON.
//
// Routes:
//
//	GET  /api/v1/movies                    movie selection list
//	GET  /api/v1/recommendations/{movieID} genre-similarity recommendations
//	GET  /api/v1/catalog/status            load lifecycle status
//	POST /api/v1/catalog/reload            synchronous catalog reload
//	GET  /api/v1/health                    component health summary
//	GET  /api/v1/health/live               liveness probe
//	GET  /api/v1/health/ready              readiness probe (alias /api/v1/ready)
//	GET  /ws                               WebSocket catalog state pushes
//	GET  /metrics                          Prometheus metrics
package api
