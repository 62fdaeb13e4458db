// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

// Package config provides layered configuration loading for Tunecarta.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment
// variables and config files.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 3931)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
type ServerConfig struct {
	// Port is the HTTP listen port.
	Port int `koanf:"port"`

	// Host is the bind address.
	Host string `koanf:"host"`

	// Timeout applies to request reads and writes.
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings for the listening-history store.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path; empty for in-memory (default: /data/tunecarta.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DUCKDB_THREADS: Worker threads; 0 uses runtime.NumCPU()
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// APIConfig holds response shaping limits for analytics endpoints.
type APIConfig struct {
	// DefaultTopTracks is the row count for top-tracks when ?n is absent.
	DefaultTopTracks int `koanf:"default_top_tracks"`

	// DefaultTopArtists is the row count for top-artists when ?n is absent.
	DefaultTopArtists int `koanf:"default_top_artists"`

	// MaxListSize caps any caller-supplied ?n.
	MaxListSize int `koanf:"max_list_size"`

	// GenreLimit caps the genre-distribution response.
	GenreLimit int `koanf:"genre_limit"`

	// MaxUploadBytes caps history CSV uploads.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// SecurityConfig holds CORS and rate limiting settings.
//
// Environment Variables:
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP request allowance
//   - DISABLE_RATE_LIMIT: Disable rate limiting entirely
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes file and line number in logs.
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_ARTIFACT_PATH: Path to the catalog artifact JSON
//   - RECOMMEND_DEFAULT_K / RECOMMEND_MAX_K: Result count bounds
//   - RECOMMEND_SAMPLE_SIZE: Rating prompt sample size
//   - RECOMMEND_SEED: RNG seed for rating prompts; 0 seeds from time
type RecommendConfig struct {
	// ArtifactPath locates the catalog artifact produced by the trainer.
	// The server starts without a recommender when the file is missing or
	// fails integrity checks; analytics endpoints remain available.
	ArtifactPath string `koanf:"artifact_path"`

	// DefaultK is the result count when the request omits top_k.
	DefaultK int `koanf:"default_k"`

	// MaxK caps caller-supplied top_k.
	MaxK int `koanf:"max_k"`

	// SampleSize is the default rating prompt size.
	SampleSize int `koanf:"sample_size"`

	// Seed for the rating prompt RNG. 0 seeds from the current time.
	Seed int64 `koanf:"seed"`
}

// Validate checks the configuration for invalid values.
// Called automatically by Load(); exposed for tests and tools.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be >= 0, got %d", c.Database.Threads)
	}
	if c.API.MaxListSize < 1 {
		return fmt.Errorf("api.max_list_size must be >= 1, got %d", c.API.MaxListSize)
	}
	if c.API.MaxUploadBytes < 1 {
		return fmt.Errorf("api.max_upload_bytes must be >= 1, got %d", c.API.MaxUploadBytes)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be >= 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if c.Recommend.DefaultK < 1 {
		return fmt.Errorf("recommend.default_k must be >= 1, got %d", c.Recommend.DefaultK)
	}
	if c.Recommend.MaxK < c.Recommend.DefaultK {
		return fmt.Errorf("recommend.max_k (%d) must be >= recommend.default_k (%d)",
			c.Recommend.MaxK, c.Recommend.DefaultK)
	}
	if c.Recommend.SampleSize < 1 {
		return fmt.Errorf("recommend.sample_size must be >= 1, got %d", c.Recommend.SampleSize)
	}
	return nil
}
