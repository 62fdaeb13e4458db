// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package database

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tunecarta/tunecarta/internal/logging"
	"github.com/tunecarta/tunecarta/internal/metrics"
	"github.com/tunecarta/tunecarta/internal/models"
	"github.com/tunecarta/tunecarta/internal/mood"
)

// Required CSV columns. Exports missing any of these are rejected.
var requiredColumns = []string{"Track Name", "Artist Name(s)", "Duration (ms)", "Popularity"}

// ErrEmptyCSV is returned when the upload has a header but no data rows.
var ErrEmptyCSV = errors.New("csv: no data rows")

// MissingColumnsError reports which required columns the upload lacks.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "csv: missing required columns: " + strings.Join(e.Columns, ", ")
}

// addedAtLayouts are tried in order when parsing the Added At column.
var addedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseHistoryCSV reads a listening-history export into track rows.
//
// The header is matched by exact column name. Rows whose Duration (ms) or
// Popularity cannot be parsed are skipped with a warning rather than failing
// the whole upload. Missing optional audio-feature columns fall back to
// neutral values, and the mood label is derived per row.
func ParseHistoryCSV(r io.Reader) ([]models.HistoryTrack, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCSV
		}
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	logger := logging.WithComponent("ingest")

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	floatField := func(record []string, name string, fallback float64) float64 {
		raw := field(record, name)
		if raw == "" {
			return fallback
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fallback
		}
		return v
	}

	var tracks []models.HistoryTrack
	var skipped int
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", line+1, err)
		}
		line++

		durationMS, err := strconv.ParseInt(field(record, "Duration (ms)"), 10, 64)
		if err != nil {
			skipped++
			continue
		}
		popularity, err := strconv.ParseFloat(field(record, "Popularity"), 64)
		if err != nil {
			skipped++
			continue
		}

		tr := models.HistoryTrack{
			TrackID:          field(record, "Track ID"),
			TrackName:        field(record, "Track Name"),
			ArtistNames:      field(record, "Artist Name(s)"),
			AlbumName:        field(record, "Album Name"),
			DurationMS:       durationMS,
			Popularity:       popularity,
			Genres:           field(record, "Genres"),
			Danceability:     floatField(record, "Danceability", mood.DefaultFeature),
			Energy:           floatField(record, "Energy", mood.DefaultFeature),
			Valence:          floatField(record, "Valence", mood.DefaultFeature),
			Acousticness:     floatField(record, "Acousticness", mood.DefaultFeature),
			Instrumentalness: floatField(record, "Instrumentalness", mood.DefaultFeature),
			Liveness:         floatField(record, "Liveness", mood.DefaultFeature),
			Speechiness:      floatField(record, "Speechiness", mood.DefaultFeature),
			Loudness:         floatField(record, "Loudness", 0),
			Tempo:            floatField(record, "Tempo", mood.DefaultTempo),
		}

		if raw := field(record, "Explicit"); raw != "" {
			tr.Explicit = parseBool(raw)
		}
		if raw := field(record, "Added At"); raw != "" {
			if ts, ok := parseAddedAt(raw); ok {
				tr.AddedAt = ts
			}
		}

		tr.Mood = mood.Predict(mood.Features{
			Valence:      tr.Valence,
			Energy:       tr.Energy,
			Danceability: tr.Danceability,
			Acousticness: tr.Acousticness,
			Tempo:        tr.Tempo,
		}).String()

		tracks = append(tracks, tr)
	}

	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Int("parsed", len(tracks)).
			Msg("Skipped rows with unparseable numeric fields")
		metrics.IngestSkippedRowsTotal.Add(float64(skipped))
	}
	if len(tracks) == 0 {
		return nil, ErrEmptyCSV
	}
	return tracks, nil
}

// parseBool accepts the spellings seen in real exports.
func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// parseAddedAt tries the known timestamp layouts.
func parseAddedAt(raw string) (time.Time, bool) {
	for _, layout := range addedAtLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
