// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultDatasetImage is the static file server image used to host the catalog pair
	DefaultDatasetImage = "nginx:1.27-alpine"

	// DefaultDatasetPort is the port the file server listens on
	DefaultDatasetPort = "80"

	// datasetDocRoot is where nginx serves static files from
	datasetDocRoot = "/usr/share/nginx/html"
)

// DatasetContainer represents a running static file server hosting a
// MovieLens-style catalog pair for testing.
type DatasetContainer struct {
	testcontainers.Container
	URL string
}

// DatasetOption configures the dataset container.
type DatasetOption func(*datasetConfig)

type datasetConfig struct {
	image        string
	movies       string
	ratings      string
	startTimeout time.Duration
}

// WithDatasetImage sets a custom file server Docker image.
func WithDatasetImage(image string) DatasetOption {
	return func(c *datasetConfig) {
		c.image = image
	}
}

// WithMovies sets the content served as u.item.
func WithMovies(content string) DatasetOption {
	return func(c *datasetConfig) {
		c.movies = content
	}
}

// WithRatings sets the content served as u.data.
func WithRatings(content string) DatasetOption {
	return func(c *datasetConfig) {
		c.ratings = content
	}
}

// WithDatasetStartTimeout sets the timeout for waiting for the file server to start.
func WithDatasetStartTimeout(timeout time.Duration) DatasetOption {
	return func(c *datasetConfig) {
		c.startTimeout = timeout
	}
}

// NewDatasetContainer creates and starts a static file server hosting the
// catalog pair. Content defaults to a tiny but well-formed dataset; override
// it with WithMovies / WithRatings.
//
// Example:
//
//	ctx := context.Background()
//	dataset, err := NewDatasetContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer dataset.Terminate(ctx)
//
//	// Use dataset.URL as the source base URL
//	resp, err := http.Get(dataset.URL + "/u.item")
func NewDatasetContainer(ctx context.Context, opts ...DatasetOption) (*DatasetContainer, error) {
	cfg := &datasetConfig{
		image: DefaultDatasetImage,
		movies: "1|Toy Story (1995)|01-Jan-1995||http://example.test/1|0|0|0|1|1|1|0|0|0|0|0|0|0|0|0|0|0|0|0\n" +
			"2|GoldenEye (1995)|01-Jan-1995||http://example.test/2|0|1|1|0|0|0|0|0|0|0|0|0|0|0|0|0|1|0|0\n" +
			"3|Four Rooms (1995)|01-Jan-1995||http://example.test/3|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|1|0|0\n",
		ratings: "196\t242\t3\t881250949\n" +
			"186\t302\t3\t891717742\n",
		startTimeout: 60 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	// Build container request
	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultDatasetPort + "/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(DefaultDatasetPort+"/tcp"),
			wait.ForHTTP("/").WithPort(DefaultDatasetPort+"/tcp"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	// Start container
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create dataset container: %w", err)
	}

	// Place the catalog pair under the document root
	if err := container.CopyToContainer(ctx, []byte(cfg.movies), datasetDocRoot+"/u.item", 0644); err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("copy u.item: %w", err)
	}
	if err := container.CopyToContainer(ctx, []byte(cfg.ratings), datasetDocRoot+"/u.data", 0644); err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("copy u.data: %w", err)
	}

	// Get container host and port
	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultDatasetPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &DatasetContainer{
		Container: container,
		URL:       fmt.Sprintf("http://%s:%s", host, port.Port()),
	}, nil
}

// Terminate stops and removes the dataset container.
func (c *DatasetContainer) Terminate(ctx context.Context) error {
	return c.Container.Terminate(ctx)
}
