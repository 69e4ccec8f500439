// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package models

// MovieSummary is one entry of the selection list: just enough for a
// dropdown row. Genre data stays server-side; clients select by ID.
type MovieSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// MovieList is the payload of the movie listing endpoint. Movies preserve
// catalog order. Count is the number of entries after any genre filter,
// Total the unfiltered catalog size.
type MovieList struct {
	Movies []MovieSummary `json:"movies"`
	Count  int            `json:"count"`
	Total  int            `json:"total"`
}
