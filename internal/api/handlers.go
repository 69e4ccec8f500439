// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cinemap/cinemap/internal/catalog"
	"github.com/cinemap/cinemap/internal/config"
	"github.com/cinemap/cinemap/internal/logging"
	"github.com/cinemap/cinemap/internal/recommend"
	ws "github.com/cinemap/cinemap/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by concern:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade (this file)
//   - handlers_helpers.go: shared helper functions
//   - handlers_catalog.go: movie listing and catalog lifecycle endpoints
//   - handlers_recommend.go: the recommendation endpoint
//   - handlers_health.go: health and probe endpoints
type Handler struct {
	store     *catalog.Store
	engine    *recommend.Engine
	hub       *ws.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// Dependencies:
//   - store: catalog store serving the movie and ratings collections
//   - engine: recommendation engine scoring against store snapshots
//   - hub: WebSocket hub for catalog state broadcasts (nil disables /ws)
//   - cfg: application configuration
//
// Example:
//
//	handler := api.NewHandler(store, engine, hub, cfg)
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg))
//	http.ListenAndServe(":8100", router.Setup())
func NewHandler(store *catalog.Store, engine *recommend.Engine, hub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		engine:    engine,
		hub:       hub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// serving reports whether at least one load has completed successfully.
// The previously loaded catalog keeps serving while a reload is in flight
// or after a failed reload, so the gate is the last successful load rather
// than the current lifecycle state.
func (h *Handler) serving() bool {
	return h.store.Status().LoadedAt != nil
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow client attacks.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// If no origin header, REJECT - legitimate browser WebSockets ALWAYS include Origin
	// Only non-browser clients (curl, scripts, mobile apps) omit Origin header
	// Allowing empty Origin bypasses CORS entirely - security vulnerability
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// If config is nil, allow by default (fail open for tests/development)
	if h.config == nil {
		return true
	}

	// Check against allowed origins from config
	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	// Origin not in allowed list - sanitize origin to prevent log injection
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection and registers the client with the hub.
// Connected clients receive a catalog_state message on every load lifecycle
// transition, so the browser can re-render without polling the status
// endpoint.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}
