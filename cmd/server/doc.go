// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

/*
Package main is the entry point for the Cinemap server application.

Cinemap is a self-hosted movie recommendation service. It loads a
MovieLens-style catalog (pipe-delimited movies with positional genre flags,
tab-delimited ratings) from an upstream source and answers "because you
watched X" queries: the movies sharing the most genres with a selected
title, ranked by Jaccard similarity.

# Application Architecture

The server implements a layered architecture with Suture v4 process supervision:

	RootSupervisor ("cinemap")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket Hub (catalog state broadcasts)
	│   └── Catalog Loader (startup load + optional refresh)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST endpoints)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Source chain: HTTP fetcher, circuit breaker, optional BadgerDB cache
 4. Catalog store: owns the snapshot, swaps it atomically on reload
 5. Recommendation engine: stateless genre-overlap scoring
 6. WebSocket Hub: real-time catalog state notifications
 7. Supervisor Tree: Suture v4 process supervision
 8. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=8100               # HTTP server port
	HTTP_HOST=0.0.0.0
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Catalog source (required)
	SOURCE_BASE_URL=http://files.grouplens.org/datasets/movielens/ml-100k
	SOURCE_TIMEOUT=0             # 0 disables the per-fetch deadline
	SOURCE_RATE_LIMIT=0          # requests/second toward the upstream, 0 = unlimited

	# Source fallback cache (optional)
	SOURCE_CACHE_ENABLED=false
	SOURCE_CACHE_PATH=/data/source-cache

	# Catalog lifecycle
	CATALOG_REFRESH_INTERVAL=0   # e.g. 6h; 0 reloads only on demand

	# API security
	CORS_ORIGINS=*               # comma-separated list in production
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Broadcasts shutdown to WebSocket clients
 3. Waits for in-flight requests (10s timeout)
 4. Closes the source cache database
 5. Reports any services that failed to stop

# Usage Examples

Development (console logs, no refresh):

	export SOURCE_BASE_URL=http://localhost:9000/ml-100k
	export LOG_FORMAT=console
	go run ./cmd/server

Production (with fallback cache and periodic refresh):

	export SOURCE_BASE_URL=http://files.grouplens.org/datasets/movielens/ml-100k
	export SOURCE_CACHE_ENABLED=true
	export SOURCE_CACHE_PATH=/data/source-cache
	export CATALOG_REFRESH_INTERVAL=6h
	export CORS_ORIGINS=https://movies.example.com
	./cinemap

Docker:

	docker run -d \
	  -e SOURCE_BASE_URL=http://files:9000/ml-100k \
	  -e SOURCE_CACHE_ENABLED=true \
	  -v cinemap-cache:/data \
	  -p 8100:8100 \
	  ghcr.io/cinemap/cinemap

# API Surface

The REST API is served under /api/v1:

  - GET  /api/v1/movies: the selection list (id and title per movie)
  - GET  /api/v1/recommendations/{movieID}: top matches for a selection
  - GET  /api/v1/catalog/status: load state, counts, skipped line numbers
  - POST /api/v1/catalog/reload: on-demand reload from the source
  - GET  /api/v1/health, /live, /ready: health and readiness probes
  - GET  /metrics: Prometheus metrics
  - GET  /ws: WebSocket stream of catalog state transitions

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/catalog: Catalog parsing and the snapshot store
  - internal/recommend: Genre similarity scoring
*/
package main
