// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Data Source:
//     - Source: where the catalog files (u.item, u.data) are fetched from
//
//  2. Infrastructure:
//     - Server: HTTP server configuration (port, host, timeouts)
//     - Catalog: load lifecycle settings (periodic refresh)
//
//  3. API & Security:
//     - Security: CORS and rate limiting for the REST surface
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Source.BaseURL, cfg.Server.Port, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Source   SourceConfig   `koanf:"source"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// SourceConfig holds settings for the catalog data source. The service
// fetches exactly two resources relative to BaseURL: u.item (movies) and
// u.data (ratings).
//
// Environment Variables:
//   - SOURCE_BASE_URL: Base URL the catalog files are fetched from (required)
//   - SOURCE_TIMEOUT: Per-fetch HTTP timeout; 0 disables the timeout entirely
//   - SOURCE_RATE_LIMIT: Client-side request pacing in requests/second; 0 disables
//   - SOURCE_CACHE_ENABLED: Keep the last good copy of each resource on disk
//     and serve it when the upstream is unreachable (default: false)
//
// A Timeout of 0 is the default on purpose: a load is an all-or-nothing
// startup/reload step and operators opt in to deadlines explicitly.
type SourceConfig struct {
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	RateLimit    float64       `koanf:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst    int           `koanf:"rate_burst"`
	CacheEnabled bool          `koanf:"cache_enabled"`
	CachePath    string        `koanf:"cache_path"`
}

// CatalogConfig holds catalog load lifecycle settings.
type CatalogConfig struct {
	// RefreshInterval re-runs the catalog load periodically after the
	// startup load. 0 (the default) disables periodic refresh; reloads
	// then only happen via the reload endpoint.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`     // read/write timeout for the listener
	Environment string        `koanf:"environment"` // "development", "staging" or "production"
}

// SecurityConfig holds CORS and rate limiting settings for the REST surface.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
