// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Catalog load lifecycle and parse quality
// - Source retrieval (fetch latency, circuit breaker, local cache)
// - Recommendation outcomes and latency
// - API endpoint latency and throughput
// - WebSocket connections

var (
	// Catalog Metrics
	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total number of catalog load attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Duration of full catalog loads (both sources) in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the currently served catalog",
		},
	)

	CatalogRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_ratings",
			Help: "Number of ratings in the currently served catalog",
		},
	)

	ParseSkippedLines = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_parse_skipped_lines_total",
			Help: "Total number of malformed source lines dropped during parsing",
		},
		[]string{"source"}, // "u.item", "u.data"
	)

	// Source Retrieval Metrics
	SourceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetches_total",
			Help: "Total number of source fetch attempts",
		},
		[]string{"source", "result"}, // result: "success", "failure"
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Duration of source fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	SourceFetchBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetch_bytes_total",
			Help: "Total bytes retrieved per source",
		},
		[]string{"source"},
	)

	SourceCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_cache_hits_total",
			Help: "Total number of source cache fallbacks served",
		},
		[]string{"source"},
	)

	SourceCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_cache_misses_total",
			Help: "Total number of source cache lookups with no stored copy",
		},
		[]string{"source"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by outcome kind",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures recorded by the circuit breaker",
		},
		[]string{"name"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)
)

// RecordCatalogLoad records one load attempt with its result and duration.
func RecordCatalogLoad(result string, duration time.Duration) {
	CatalogLoads.WithLabelValues(result).Inc()
	CatalogLoadDuration.Observe(duration.Seconds())
}

// RecordParseSkips adds the number of dropped lines for a source.
func RecordParseSkips(source string, count int) {
	if count > 0 {
		ParseSkippedLines.WithLabelValues(source).Add(float64(count))
	}
}

// SetCatalogSize updates the served collection size gauges.
func SetCatalogSize(movies, ratings int) {
	CatalogMovies.Set(float64(movies))
	CatalogRatings.Set(float64(ratings))
}

// RecordSourceFetch records one fetch attempt against a source.
func RecordSourceFetch(source, result string, duration time.Duration, bytes int) {
	SourceFetches.WithLabelValues(source, result).Inc()
	SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if bytes > 0 {
		SourceFetchBytes.WithLabelValues(source).Add(float64(bytes))
	}
}

// RecordRecommendation records one recommendation request by outcome kind.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordAPIRequest records API request metrics.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
