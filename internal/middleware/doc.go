// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

// Package middleware provides HTTP middleware shared by the API routes.
//
// Both middlewares use the http.HandlerFunc wrapping style so the router can
// compose them with chi's http.Handler chain through a small adapter:
//
//	handler := middleware.PrometheusMetrics(middleware.Compression(h.Movies))
//
// # Available Middleware
//
//   - PrometheusMetrics: records request counters, duration histograms, and
//     the in-flight request gauge for every wrapped route.
//   - Compression: gzip-compresses responses for clients that send
//     Accept-Encoding: gzip. WebSocket upgrades bypass compression.
//
// Cross-cutting concerns that chi already ships (request ID, real IP,
// panic recovery) come from chi's own middleware package and are wired in
// the api router rather than duplicated here.
package middleware
