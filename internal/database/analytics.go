// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package database

import (
	"context"
	"fmt"
	"math"

	"github.com/tunecarta/tunecarta/internal/models"
)

// Stats returns the library-wide summary.
func (db *DB) Stats(ctx context.Context) (*models.LibraryStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT
			COUNT(*),
			COUNT(DISTINCT artist_names),
			COALESCE(SUM(duration_ms), 0),
			COALESCE(AVG(popularity), 0),
			COALESCE(MEDIAN(popularity), 0),
			COALESCE(MIN(popularity), 0),
			COALESCE(MAX(popularity), 0),
			COALESCE(SUM(CASE WHEN explicit THEN 1 ELSE 0 END), 0)
		FROM listening_history
	`

	var s models.LibraryStats
	err := db.conn.QueryRowContext(ctx, query).Scan(
		&s.TotalTracks, &s.UniqueArtists, &s.TotalDurationMS,
		&s.AvgPopularity, &s.MedianPopularity, &s.MinPopularity, &s.MaxPopularity,
		&s.ExplicitCount,
	)
	if err != nil {
		return nil, fmt.Errorf("stats query: %w", err)
	}

	s.TotalHours = round2(float64(s.TotalDurationMS) / 3_600_000.0)
	s.AvgPopularity = round2(s.AvgPopularity)
	return &s, nil
}

// TopTracks returns the n most popular tracks.
func (db *DB) TopTracks(ctx context.Context, n int) ([]models.TopTrack, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT track_name, artist_names, popularity, duration_ms, mood
		FROM listening_history
		ORDER BY popularity DESC, track_name
		LIMIT ?
	`
	rows, err := db.conn.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("top tracks query: %w", err)
	}
	defer closeWithLog(rows, "top tracks rows")

	var out []models.TopTrack
	for rows.Next() {
		var t models.TopTrack
		if err := rows.Scan(&t.TrackName, &t.ArtistNames, &t.Popularity, &t.DurationMS, &t.Mood); err != nil {
			return nil, fmt.Errorf("scan top track: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TopArtists returns the n artists with the most tracks, with their share
// of the library.
func (db *DB) TopArtists(ctx context.Context, n int) ([]models.TopArtist, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT
			artist_names,
			COUNT(*) AS track_count,
			COUNT(*) * 100.0 / (SELECT COUNT(*) FROM listening_history) AS pct
		FROM listening_history
		GROUP BY artist_names
		ORDER BY track_count DESC, artist_names
		LIMIT ?
	`
	rows, err := db.conn.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("top artists query: %w", err)
	}
	defer closeWithLog(rows, "top artists rows")

	var out []models.TopArtist
	for rows.Next() {
		var a models.TopArtist
		if err := rows.Scan(&a.Artist, &a.TrackCount, &a.Percentage); err != nil {
			return nil, fmt.Errorf("scan top artist: %w", err)
		}
		a.Percentage = round2(a.Percentage)
		out = append(out, a)
	}
	return out, rows.Err()
}

// MoodDistribution returns track counts per derived mood label.
func (db *DB) MoodDistribution(ctx context.Context) ([]models.DistributionEntry, error) {
	query := `
		SELECT
			mood,
			COUNT(*) AS cnt,
			COUNT(*) * 100.0 / (SELECT COUNT(*) FROM listening_history) AS pct
		FROM listening_history
		GROUP BY mood
		ORDER BY cnt DESC, mood
	`
	return db.distribution(ctx, query)
}

// GenreDistribution splits the comma-separated genre lists and returns the
// top buckets. Libraries without genre data get an empty result, not an error.
func (db *DB) GenreDistribution(ctx context.Context, limit int) ([]models.DistributionEntry, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		WITH split AS (
			SELECT trim(unnest(string_split(genres, ','))) AS genre
			FROM listening_history
			WHERE genres IS NOT NULL AND genres <> ''
		)
		SELECT
			genre,
			COUNT(*) AS cnt,
			COUNT(*) * 100.0 / (SELECT COUNT(*) FROM split) AS pct
		FROM split
		WHERE genre <> ''
		GROUP BY genre
		ORDER BY cnt DESC, genre
		LIMIT ?
	`
	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("genre distribution query: %w", err)
	}
	defer closeWithLog(rows, "genre rows")

	return scanDistribution(rows)
}

// Temporal returns yearly and monthly counts of when tracks were added.
// Rows without an added-at timestamp are ignored.
func (db *DB) Temporal(ctx context.Context) (*models.TemporalTrends, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	yearly, err := db.periodCounts(ctx, `
		SELECT strftime(added_at, '%Y') AS period, COUNT(*) AS cnt
		FROM listening_history
		WHERE added_at IS NOT NULL
		GROUP BY period
		ORDER BY period
	`)
	if err != nil {
		return nil, fmt.Errorf("yearly trends: %w", err)
	}

	monthly, err := db.periodCounts(ctx, `
		SELECT strftime(added_at, '%Y-%m') AS period, COUNT(*) AS cnt
		FROM listening_history
		WHERE added_at IS NOT NULL
		GROUP BY period
		ORDER BY period
	`)
	if err != nil {
		return nil, fmt.Errorf("monthly trends: %w", err)
	}

	return &models.TemporalTrends{Yearly: yearly, Monthly: monthly}, nil
}

// Popularity band boundaries, matching the catalog's 0-100 popularity scale.
const (
	popularityLowMax    = 40
	popularityMediumMax = 70
)

// PopularityDistribution buckets tracks into low/medium/high popularity bands.
func (db *DB) PopularityDistribution(ctx context.Context) ([]models.DistributionEntry, error) {
	query := fmt.Sprintf(`
		SELECT
			CASE
				WHEN popularity < %d THEN 'low'
				WHEN popularity < %d THEN 'medium'
				ELSE 'high'
			END AS band,
			COUNT(*) AS cnt,
			COUNT(*) * 100.0 / (SELECT COUNT(*) FROM listening_history) AS pct
		FROM listening_history
		GROUP BY band
		ORDER BY CASE band WHEN 'low' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END
	`, popularityLowMax, popularityMediumMax)
	return db.distribution(ctx, query)
}

// AudioFeatures returns the library-wide mean of each audio feature.
func (db *DB) AudioFeatures(ctx context.Context) (*models.AudioFeatureAverages, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT
			COALESCE(AVG(danceability), 0),
			COALESCE(AVG(energy), 0),
			COALESCE(AVG(valence), 0),
			COALESCE(AVG(acousticness), 0),
			COALESCE(AVG(instrumentalness), 0),
			COALESCE(AVG(liveness), 0),
			COALESCE(AVG(speechiness), 0),
			COALESCE(AVG(loudness), 0),
			COALESCE(AVG(tempo), 0)
		FROM listening_history
	`
	var f models.AudioFeatureAverages
	err := db.conn.QueryRowContext(ctx, query).Scan(
		&f.Danceability, &f.Energy, &f.Valence, &f.Acousticness,
		&f.Instrumentalness, &f.Liveness, &f.Speechiness, &f.Loudness, &f.Tempo,
	)
	if err != nil {
		return nil, fmt.Errorf("audio features query: %w", err)
	}
	return &f, nil
}

// ExplicitStats splits the library into explicit and clean tracks.
func (db *DB) ExplicitStats(ctx context.Context) (*models.ExplicitBreakdown, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN explicit THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN explicit THEN 0 ELSE 1 END), 0)
		FROM listening_history
	`
	var b models.ExplicitBreakdown
	if err := db.conn.QueryRowContext(ctx, query).Scan(&b.Explicit, &b.Clean); err != nil {
		return nil, fmt.Errorf("explicit stats query: %w", err)
	}
	if total := b.Explicit + b.Clean; total > 0 {
		b.ExplicitPct = round2(float64(b.Explicit) * 100.0 / float64(total))
	}
	return &b, nil
}

// distribution runs a three-column (label, count, pct) query.
func (db *DB) distribution(ctx context.Context, query string) ([]models.DistributionEntry, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distribution query: %w", err)
	}
	defer closeWithLog(rows, "distribution rows")

	return scanDistribution(rows)
}

func (db *DB) periodCounts(ctx context.Context, query string) ([]models.PeriodCount, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "period rows")

	var out []models.PeriodCount
	for rows.Next() {
		var p models.PeriodCount
		if err := rows.Scan(&p.Period, &p.Count); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by *sql.Rows; lets distribution scans share code.
type rowScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanDistribution(rows rowScanner) ([]models.DistributionEntry, error) {
	var out []models.DistributionEntry
	for rows.Next() {
		var e models.DistributionEntry
		if err := rows.Scan(&e.Label, &e.Count, &e.Percentage); err != nil {
			return nil, fmt.Errorf("scan distribution entry: %w", err)
		}
		e.Percentage = round2(e.Percentage)
		out = append(out, e)
	}
	return out, rows.Err()
}

// round2 rounds to two decimal places for percentage-style fields.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
