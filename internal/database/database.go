// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

// Package database stores the uploaded listening history in DuckDB and
// answers the analytics queries over it.
//
// The history is a single flat table; every analytics endpoint is one
// aggregation query. Uploads replace the whole dataset in a transaction, so
// readers never see a half-ingested library.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tunecarta/tunecarta/internal/config"
	"github.com/tunecarta/tunecarta/internal/logging"
)

// defaultQueryTimeout bounds queries that arrive without a deadline.
const defaultQueryTimeout = 30 * time.Second

// DB wraps the DuckDB connection and provides data access methods.
type DB struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	logger zerolog.Logger
}

// New creates a database connection and initializes the schema.
// An empty cfg.Path opens an in-memory database (used in tests).
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	connStr := ""
	if cfg.Path != "" {
		// Ensure parent directory exists for the database file
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}

		// Disable auto-install/auto-load to prevent hangs in restricted
		// network environments; no extensions are needed here
		connStr = fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
			cfg.Path, numThreads, cfg.MaxMemory)
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		logger: logging.WithComponent("database"),
	}

	// DuckDB is in-process; a single writer connection avoids write-write
	// conflicts while reads still run concurrently on it
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(runtime.NumCPU())
	conn.SetConnMaxLifetime(0)

	if err := db.createSchema(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info().Str("path", cfg.Path).Msg("Database ready")
	return db, nil
}

// createSchema creates the listening history table if it does not exist.
func (db *DB) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()

	schema := `
		CREATE TABLE IF NOT EXISTS listening_history (
			track_id         VARCHAR,
			track_name       VARCHAR NOT NULL,
			artist_names     VARCHAR NOT NULL,
			album_name       VARCHAR,
			duration_ms      BIGINT NOT NULL,
			popularity       DOUBLE NOT NULL,
			explicit         BOOLEAN NOT NULL DEFAULT FALSE,
			added_at         TIMESTAMP,
			genres           VARCHAR,
			danceability     DOUBLE NOT NULL,
			energy           DOUBLE NOT NULL,
			valence          DOUBLE NOT NULL,
			acousticness     DOUBLE NOT NULL,
			instrumentalness DOUBLE NOT NULL,
			liveness         DOUBLE NOT NULL,
			speechiness      DOUBLE NOT NULL,
			loudness         DOUBLE NOT NULL,
			tempo            DOUBLE NOT NULL,
			mood             VARCHAR NOT NULL
		)
	`
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create listening_history: %w", err)
	}
	return nil
}

// ensureContext adds the default timeout when the caller's context has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// Close checkpoints and closes the database.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	// Flush the WAL so the next startup replays nothing
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		db.logger.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}
	cancel()

	return db.conn.Close()
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}
