// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

/*
Package models defines the wire-level data structures of the Cinemap API.

It holds the standardized response envelope and the payload types the HTTP
layer serializes. Domain types (catalog records, recommendation outcomes)
live with their owning packages; models only covers the shapes that cross
the HTTP boundary and carry no behavior.

Key Components:

  - APIResponse: standard response wrapper with status, data, metadata, error
  - APIError: machine-readable error codes with optional details
  - MovieSummary, MovieList: selection-list payloads
  - HealthStatus: health endpoint payload

The package imports nothing from the rest of the module, so every layer can
depend on it without cycles.
*/
package models
