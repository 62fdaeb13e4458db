// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tunecarta/tunecarta/internal/models"
)

// ReplaceHistory swaps the stored listening history for the given rows in a
// single transaction. Readers see the old dataset until commit.
func (db *DB) ReplaceHistory(ctx context.Context, tracks []models.HistoryTrack) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM listening_history"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listening_history (
			track_id, track_name, artist_names, album_name,
			duration_ms, popularity, explicit, added_at, genres,
			danceability, energy, valence, acousticness, instrumentalness,
			liveness, speechiness, loudness, tempo, mood
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer closeWithLog(stmt, "insert statement")

	for i := range tracks {
		tr := &tracks[i]

		var addedAt interface{}
		if !tr.AddedAt.IsZero() {
			addedAt = tr.AddedAt
		}

		if _, err := stmt.ExecContext(ctx,
			nullIfEmpty(tr.TrackID), tr.TrackName, tr.ArtistNames, nullIfEmpty(tr.AlbumName),
			tr.DurationMS, tr.Popularity, tr.Explicit, addedAt, nullIfEmpty(tr.Genres),
			tr.Danceability, tr.Energy, tr.Valence, tr.Acousticness, tr.Instrumentalness,
			tr.Liveness, tr.Speechiness, tr.Loudness, tr.Tempo, tr.Mood,
		); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	db.logger.Info().Int("rows", len(tracks)).Msg("Listening history replaced")
	return nil
}

// HasData reports whether any listening history has been uploaded.
func (db *DB) HasData(ctx context.Context) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM listening_history").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count history: %w", err)
	}
	return count > 0, nil
}

// nullIfEmpty maps empty strings to SQL NULL for optional columns.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
