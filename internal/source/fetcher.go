// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

// Package source retrieves the raw catalog files from the configured
// upstream. A Fetcher resolves a resource name (u.item, u.data) to the
// raw bytes; implementations decorate each other, so the production chain
// is HTTP fetcher -> circuit breaker -> optional on-disk cache.
package source

import (
	"context"
	"fmt"
)

// Fetcher retrieves a named text resource from the catalog source.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// StatusError reports a non-200 response from the upstream. Callers use
// errors.As to recover the failing resource and status code for error
// surfaces (the reload endpoint maps it to 502 with the source identity).
type StatusError struct {
	Source     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("source %q returned status %d", e.Source, e.StatusCode)
}
