// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCatalogLoad(t *testing.T) {
	before := testutil.ToFloat64(CatalogLoads.WithLabelValues("success"))

	RecordCatalogLoad("success", 20*time.Millisecond)

	after := testutil.ToFloat64(CatalogLoads.WithLabelValues("success"))
	if after != before+1 {
		t.Errorf("CatalogLoads success = %v, want %v", after, before+1)
	}
}

func TestRecordParseSkips(t *testing.T) {
	tests := []struct {
		name   string
		source string
		count  int
		want   float64
	}{
		{"positive count recorded", "u.item", 3, 3},
		{"zero count not recorded", "u.data", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(ParseSkippedLines.WithLabelValues(tt.source))
			RecordParseSkips(tt.source, tt.count)
			after := testutil.ToFloat64(ParseSkippedLines.WithLabelValues(tt.source))
			if after-before != tt.want {
				t.Errorf("ParseSkippedLines delta = %v, want %v", after-before, tt.want)
			}
		})
	}
}

func TestSetCatalogSize(t *testing.T) {
	SetCatalogSize(1682, 100000)

	if got := testutil.ToFloat64(CatalogMovies); got != 1682 {
		t.Errorf("CatalogMovies = %v, want 1682", got)
	}
	if got := testutil.ToFloat64(CatalogRatings); got != 100000 {
		t.Errorf("CatalogRatings = %v, want 100000", got)
	}
}

func TestRecordSourceFetch(t *testing.T) {
	before := testutil.ToFloat64(SourceFetches.WithLabelValues("u.item", "failure"))
	bytesBefore := testutil.ToFloat64(SourceFetchBytes.WithLabelValues("u.item"))

	RecordSourceFetch("u.item", "failure", 5*time.Millisecond, 0)

	after := testutil.ToFloat64(SourceFetches.WithLabelValues("u.item", "failure"))
	if after != before+1 {
		t.Errorf("SourceFetches failure = %v, want %v", after, before+1)
	}

	// Zero-byte results must not grow the byte counter.
	bytesAfter := testutil.ToFloat64(SourceFetchBytes.WithLabelValues("u.item"))
	if bytesAfter != bytesBefore {
		t.Errorf("SourceFetchBytes = %v, want unchanged %v", bytesAfter, bytesBefore)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("two_matches"))

	RecordRecommendation("two_matches", time.Millisecond)

	after := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("two_matches"))
	if after != before+1 {
		t.Errorf("RecommendationsTotal = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("APIActiveRequests after inc = %v, want %v", got, base+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("APIActiveRequests after dec = %v, want %v", got, base)
	}
}
