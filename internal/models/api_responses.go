// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides a consistent structure for both successful and
// error responses, with metadata for observability.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"movies": [...], "count": 1682},
//	  "metadata": {
//	    "timestamp": "2026-08-24T12:00:00Z",
//	    "query_time_ms": 2
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "MOVIE_NOT_FOUND",
//	    "message": "No movie with ID 9999 in the catalog"
//	  },
//	  "metadata": {"timestamp": "2026-08-24T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability. QueryTimeMS is the
// server-side processing time in milliseconds; it is omitted when zero.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries structured error details with a machine-readable code so
// clients can branch without parsing the message.
//
// Codes used by the recommendation surface:
//   - NO_SELECTION: empty movie selection
//   - INVALID_SELECTION: selection is not an integer ID
//   - MOVIE_NOT_FOUND: selected ID absent from the catalog
//   - CATALOG_NOT_READY: no successful load has completed yet
//   - RELOAD_IN_PROGRESS: a load is already running
//   - SOURCE_FAILED: upstream dataset retrieval failed
//   - VALIDATION_ERROR: invalid request parameters
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
