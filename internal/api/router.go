// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinemap/cinemap/internal/middleware"
)

// chiMiddleware adapts a func(http.HandlerFunc) http.HandlerFunc middleware
// to Chi's func(http.Handler) http.Handler signature, so the HandlerFunc
// middlewares in internal/middleware work with Chi's r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers and middleware into the route table.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler. A nil ChiMiddleware
// falls back to the secure defaults.
func NewRouter(handler *Handler, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
	}
}

// Setup builds the Chi route table with the full middleware stack.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(Recoverer())
	// CORS applies globally so OPTIONS preflight requests resolve for
	// every route
	r.Use(router.chiMiddleware.CORS())

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limit so monitoring tools can poll frequently
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())

		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		r.Get("/movies", router.handler.Movies)
		r.Get("/recommendations", router.handler.Recommendations)
		r.Get("/recommendations/{movieID}", router.handler.Recommendations)
		r.Get("/catalog/status", router.handler.CatalogStatus)

		// Reloads hit the upstream source twice per call, so they get a
		// stricter limit than the rest of the group
		r.With(router.chiMiddleware.RateLimitReload()).Post("/catalog/reload", router.handler.CatalogReload)

		// Probe alias; same handler as /api/v1/health/ready
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// WebSocket Endpoint
	// ========================
	// Rate limit covers connection upgrades, not messages on established
	// connections
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWebSocket())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/ws", router.handler.WebSocket)
	})

	// ========================
	// Metrics Endpoint
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
