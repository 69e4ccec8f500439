// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package api

// MoviesRequest holds the validated query parameters of the movie listing
// endpoint. All fields are optional; the zero value lists the whole catalog
// in catalog order.
//
// Genre must be a vocabulary name when present ("genre" validator tag).
// Limit bounds the page size; 0 means no limit. Offset skips entries after
// the genre filter is applied.
type MoviesRequest struct {
	Genre  string `validate:"omitempty,genre"`
	Limit  int    `validate:"omitempty,gte=1,lte=5000"`
	Offset int    `validate:"omitempty,gte=0"`
}
