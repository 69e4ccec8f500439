// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to manage Docker containers for integration tests,
// providing realistic testing environments that closely match production.
//
// # Dataset Container
//
// The DatasetContainer serves a MovieLens-style catalog pair (u.item, u.data)
// over plain HTTP, standing in for wherever operators host the files:
//
//	func TestCatalogLoad(t *testing.T) {
//	    ctx := context.Background()
//	    dataset, err := testinfra.NewDatasetContainer(ctx,
//	        testinfra.WithMovies("1|Toy Story (1995)|0|0|0|1|1|1|...\n"),
//	        testinfra.WithRatings("196\t242\t3\t881250949\n"),
//	    )
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer dataset.Terminate(ctx)
//
//	    fetcher := source.NewHTTPFetcher(&config.SourceConfig{BaseURL: dataset.URL}, logger)
//	    // Exercise the real fetch path
//	}
//
// # Benefits Over Mocks
//
// Using real containers provides several advantages:
//   - Tests exercise the real HTTP client against a real server
//   - No mock drift between handler stubs and actual server behavior
//   - Tests run against production-equivalent static file hosting
//
// # CI Considerations
//
// These tests require Docker and network access. In CI:
//   - Self-hosted runners have Docker pre-installed
//   - Container images are cached between runs
//   - Tests are skipped gracefully if Docker is unavailable
//
// # Network Requirements
//
// First run may need to download container images. Subsequent runs use cached images.
package testinfra
