// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a
// thread-safe singleton validator instance with custom validators and
// user-friendly error messages. It integrates with the API error format for
// consistent error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - A custom "genre" validator checking membership in the catalog's fixed
//     genre vocabulary
//   - Error translation to human-readable messages
//   - APIError conversion matching the response envelope's error format
//
// # Quick Start
//
//	type MoviesRequest struct {
//	    Genre string `validate:"omitempty,genre"`
//	    Limit int    `validate:"min=0,max=10000"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    req := MoviesRequest{Genre: r.URL.Query().Get("genre")}
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	        return
//	    }
//	    // proceed with valid request
//	}
//
// # Validation Tags
//
// Built-in tags used across the request structs:
//   - required: field must not be empty
//   - min=n, max=n: numeric bounds (length bounds for strings)
//   - oneof=a b: value must be one of the listed options
//   - omitempty: skip remaining validation when the field is zero
//
// Custom tags registered by this package:
//   - genre: value must be one of the 18 catalog genre names, exact match
package validation
