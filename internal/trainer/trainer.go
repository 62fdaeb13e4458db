// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

// Package trainer builds the catalog artifact the recommender serves from.
//
// Training is a batch job run offline by cmd/trainer: read a raw catalog CSV,
// fit a per-coordinate standardization over the full population, project every
// track into the standardized space, and write a versioned artifact. The
// server never retrains; it only loads what this package produced.
package trainer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tunecarta/tunecarta/internal/catalog"
	"github.com/tunecarta/tunecarta/internal/logging"
)

// FeatureColumns are the audio-feature coordinates of the catalog space, in
// artifact order. Distance between tracks is computed over exactly these.
var FeatureColumns = []string{
	"danceability",
	"energy",
	"loudness",
	"speechiness",
	"acousticness",
	"instrumentalness",
	"liveness",
	"valence",
	"tempo",
}

// requiredColumns must all be present in the catalog CSV header.
var requiredColumns = append([]string{"track_id", "track_name", "artists"}, FeatureColumns...)

// ErrEmptyCatalog is returned when the CSV yields no usable rows.
var ErrEmptyCatalog = errors.New("trainer: no usable catalog rows")

// RawTrack is one catalog row before standardization.
type RawTrack struct {
	ID          string
	TrackName   string
	ArtistNames string
	Genre       string
	Year        int
	Popularity  float64
	Features    []float64
}

// ParseCatalogCSV reads a raw catalog export.
//
// The header is matched case-insensitively. Rows with an empty track_id, a
// duplicate track_id, or an unparseable feature value are skipped with a
// warning; a bad row should not abort a multi-hour training run.
func ParseCatalogCSV(r io.Reader) ([]RawTrack, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("trainer: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("trainer: missing required columns: %s", strings.Join(missing, ", "))
	}

	logger := logging.WithComponent("trainer")

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	seen := make(map[string]bool)
	var tracks []RawTrack
	var skipped int
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("trainer: read row %d: %w", line+1, err)
		}
		line++

		id := field(record, "track_id")
		if id == "" || seen[id] {
			skipped++
			continue
		}

		features := make([]float64, len(FeatureColumns))
		ok := true
		for i, name := range FeatureColumns {
			v, err := strconv.ParseFloat(field(record, name), 64)
			if err != nil {
				ok = false
				break
			}
			features[i] = v
		}
		if !ok {
			skipped++
			continue
		}

		tr := RawTrack{
			ID:          id,
			TrackName:   field(record, "track_name"),
			ArtistNames: field(record, "artists"),
			Genre:       field(record, "track_genre"),
			Features:    features,
		}
		if raw := field(record, "year"); raw != "" {
			if year, err := strconv.Atoi(raw); err == nil {
				tr.Year = year
			}
		}
		if raw := field(record, "popularity"); raw != "" {
			if pop, err := strconv.ParseFloat(raw, 64); err == nil {
				tr.Popularity = pop
			}
		}

		seen[id] = true
		tracks = append(tracks, tr)
	}

	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Int("parsed", len(tracks)).
			Msg("Skipped unusable catalog rows")
	}
	if len(tracks) == 0 {
		return nil, ErrEmptyCatalog
	}
	return tracks, nil
}

// FitScaler computes the per-coordinate mean and population standard
// deviation over the full track set. A zero-variance coordinate gets scale 1
// so it passes through unchanged instead of dividing by zero.
func FitScaler(tracks []RawTrack) catalog.Scaler {
	dim := len(FeatureColumns)
	means := make([]float64, dim)
	scales := make([]float64, dim)
	n := float64(len(tracks))

	for _, tr := range tracks {
		for i, v := range tr.Features {
			means[i] += v
		}
	}
	for i := range means {
		means[i] /= n
	}

	for _, tr := range tracks {
		for i, v := range tr.Features {
			d := v - means[i]
			scales[i] += d * d
		}
	}
	for i := range scales {
		scales[i] = math.Sqrt(scales[i] / n)
		if scales[i] == 0 {
			scales[i] = 1
		}
	}

	return catalog.Scaler{Means: means, Scales: scales}
}

// BuildArtifact fits the scaler, standardizes every track vector, and
// assembles the versioned artifact. Track order in the artifact follows CSV
// order; the store uses that order to break distance ties.
func BuildArtifact(tracks []RawTrack) (*catalog.Artifact, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyCatalog
	}

	scaler := FitScaler(tracks)
	out := make([]catalog.Track, 0, len(tracks))
	for _, tr := range tracks {
		vec, err := scaler.Transform(tr.Features)
		if err != nil {
			return nil, fmt.Errorf("trainer: standardize track %q: %w", tr.ID, err)
		}
		out = append(out, catalog.Track{
			ID:          tr.ID,
			TrackName:   tr.TrackName,
			ArtistNames: tr.ArtistNames,
			Genre:       tr.Genre,
			Year:        tr.Year,
			Popularity:  tr.Popularity,
			Vector:      vec,
		})
	}

	return &catalog.Artifact{
		Version:      catalog.ArtifactVersion,
		Metric:       catalog.MetricEuclidean,
		FeatureNames: append([]string(nil), FeatureColumns...),
		Scaler:       scaler,
		Tracks:       out,
	}, nil
}
