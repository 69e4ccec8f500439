// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/cinemap/cinemap/internal/logging"
	"github.com/cinemap/cinemap/internal/metrics"
)

// Circuit breaker tuning. One catalog load performs two sequential fetches,
// so MaxRequests must cover a full load while half-open, and three
// consecutive failures mean roughly two broken loads in a row.
const (
	breakerName        = "catalog-source"
	breakerMaxRequests = 3
	breakerInterval    = time.Minute
	breakerTimeout     = time.Minute
	breakerFailures    = 3
)

// BreakerFetcher wraps a Fetcher with circuit breaker protection so a dead
// upstream fails reload requests fast instead of tying them up.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. The timing determines when to
// recover from failures, not data integrity. Unit tests exercise the trip
// threshold and rejection path; recovery timing belongs to the library.
type BreakerFetcher struct {
	inner Fetcher
	cb    *gobreaker.CircuitBreaker[[]byte]
	name  string
}

// NewBreakerFetcher wraps inner with a circuit breaker.
// Circuit breaker configuration:
//   - Opens after 3 consecutive fetch failures
//   - Allows 3 requests in half-open state (one full load)
//   - Waits 1 minute before transitioning from open to half-open
func NewBreakerFetcher(inner Fetcher) *BreakerFetcher {
	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= breakerFailures

			if shouldTrip {
				logging.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		// OnStateChange is called whenever the circuit breaker changes state
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			// Reset consecutive failures when transitioning to closed
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerFetcher{
		inner: inner,
		cb:    cb,
		name:  breakerName,
	}
}

// Fetch retrieves the named resource through the circuit breaker.
// When the circuit is open the upstream is not contacted at all and the
// call fails with gobreaker.ErrOpenState wrapped with the resource name.
func (b *BreakerFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	body, err := b.cb.Execute(func() ([]byte, error) {
		return b.inner.Fetch(ctx, name)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			// Circuit is open or too many concurrent requests in half-open state
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Str("source", name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("fetch %q: %w", name, err)
		}

		// Request failed
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	// Request succeeded
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	return body, nil
}

// State returns the current circuit breaker state.
func (b *BreakerFetcher) State() gobreaker.State {
	return b.cb.State()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
