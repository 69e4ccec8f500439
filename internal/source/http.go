// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/cinemap/cinemap/internal/config"
	"github.com/cinemap/cinemap/internal/metrics"
)

// HTTPFetcher retrieves catalog resources over HTTP relative to a base URL.
// A zero client timeout means a fetch only ends when the server answers or
// the context is cancelled; operators opt in to deadlines via SOURCE_TIMEOUT.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewHTTPFetcher creates an HTTP fetcher for the configured source.
//
// Parameters:
//   - cfg: source settings (base URL, timeout, client-side pacing)
//   - logger: parent logger; a component child logger is derived from it
func NewHTTPFetcher(cfg *config.SourceConfig, logger zerolog.Logger) *HTTPFetcher {
	// Normalize URL (remove trailing slash)
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	return &HTTPFetcher{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
		logger:  logger.With().Str("component", "source").Logger(),
	}
}

// Fetch retrieves the named resource and returns its raw bytes.
// Non-200 responses come back as *StatusError; transport failures are
// wrapped with the resource name.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("fetch %q: %w", name, err)
		}
	}

	start := time.Now()
	body, err := f.doFetch(ctx, name)
	if err != nil {
		metrics.RecordSourceFetch(name, "failure", time.Since(start), 0)
		return nil, err
	}

	metrics.RecordSourceFetch(name, "success", time.Since(start), len(body))
	f.logger.Debug().
		Str("source", name).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched source resource")
	return body, nil
}

func (f *HTTPFetcher) doFetch(ctx context.Context, name string) ([]byte, error) {
	reqURL := f.baseURL + "/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", name, err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", "cinemap")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Source: name, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: read body: %w", name, err)
	}

	return body, nil
}
