// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

// Package catalog holds the immutable track catalog the recommender queries.
//
// The catalog is produced offline by the trainer: each track carries a feature
// vector already standardized per coordinate (zero mean, unit scale over the
// catalog population), plus the fitted scaler parameters so raw feature values
// can be projected into the same space. Nothing in the catalog changes after
// load; concurrent readers need no locking.
package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a track ID is not present in the catalog.
var ErrNotFound = errors.New("catalog: track not found")

// Track is one catalog entry with its standardized feature vector.
type Track struct {
	ID          string    `json:"id"`
	TrackName   string    `json:"track_name"`
	ArtistNames string    `json:"artists"`
	Genre       string    `json:"track_genre,omitempty"`
	Year        int       `json:"year,omitempty"`
	Popularity  float64   `json:"popularity"`
	Vector      []float64 `json:"vector"`
}

// Scaler holds the per-coordinate standardization fitted by the trainer.
// standardized = (raw - Means[i]) / Scales[i]
type Scaler struct {
	Means  []float64 `json:"means"`
	Scales []float64 `json:"scales"`
}

// Transform projects a raw feature vector into the standardized space.
func (s Scaler) Transform(raw []float64) ([]float64, error) {
	if len(raw) != len(s.Means) {
		return nil, fmt.Errorf("scaler: expected %d features, got %d", len(s.Means), len(raw))
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = (v - s.Means[i]) / s.Scales[i]
	}
	return out, nil
}

// Store is the immutable catalog: tracks in insertion order plus an ID index.
// Insertion order is load-bearing; distance ties between tracks resolve in
// favor of the earlier position.
type Store struct {
	tracks       []Track
	byID         map[string]int
	featureNames []string
	scaler       Scaler
}

// NewStore validates the track set and builds the store.
//
// Rejected inputs: an empty track set, a vector whose length differs from the
// feature-name list, a duplicate ID, or scaler parameters that do not match
// the feature dimension. A store that fails these checks is never partially
// usable; the caller keeps running without a recommender.
func NewStore(tracks []Track, featureNames []string, scaler Scaler) (*Store, error) {
	if len(tracks) == 0 {
		return nil, errors.New("catalog: empty track set")
	}
	dim := len(featureNames)
	if dim == 0 {
		return nil, errors.New("catalog: no feature names")
	}
	if len(scaler.Means) != dim || len(scaler.Scales) != dim {
		return nil, fmt.Errorf("catalog: scaler has %d/%d params, want %d",
			len(scaler.Means), len(scaler.Scales), dim)
	}
	for i, s := range scaler.Scales {
		if s == 0 {
			return nil, fmt.Errorf("catalog: zero scale for feature %q", featureNames[i])
		}
	}

	byID := make(map[string]int, len(tracks))
	for i, tr := range tracks {
		if tr.ID == "" {
			return nil, fmt.Errorf("catalog: track at position %d has empty ID", i)
		}
		if len(tr.Vector) != dim {
			return nil, fmt.Errorf("catalog: track %q has %d-dim vector, want %d",
				tr.ID, len(tr.Vector), dim)
		}
		if _, dup := byID[tr.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate track ID %q", tr.ID)
		}
		byID[tr.ID] = i
	}

	return &Store{
		tracks:       tracks,
		byID:         byID,
		featureNames: featureNames,
		scaler:       scaler,
	}, nil
}

// Len returns the number of tracks in the catalog.
func (s *Store) Len() int {
	return len(s.tracks)
}

// Dim returns the feature vector dimension.
func (s *Store) Dim() int {
	return len(s.featureNames)
}

// FeatureNames returns the ordered coordinate names.
func (s *Store) FeatureNames() []string {
	return s.featureNames
}

// Scaler returns the fitted standardization parameters.
func (s *Store) Scaler() Scaler {
	return s.scaler
}

// At returns the track at the given catalog position.
func (s *Store) At(pos int) Track {
	return s.tracks[pos]
}

// ByID looks up a track by its identity.
// Returns ErrNotFound when the ID is not in the catalog.
func (s *Store) ByID(id string) (Track, error) {
	pos, ok := s.byID[id]
	if !ok {
		return Track{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.tracks[pos], nil
}

// PosByID returns the catalog position of a track ID.
func (s *Store) PosByID(id string) (int, bool) {
	pos, ok := s.byID[id]
	return pos, ok
}
