// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package catalog

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// ArtifactVersion is the current artifact schema version.
// Bumped whenever the on-disk layout changes incompatibly.
const ArtifactVersion = 1

// Artifact is the on-disk catalog format produced by the trainer.
//
// The metric is recorded at build time and checked on load; an index built
// for a different metric would silently return wrong rankings otherwise.
type Artifact struct {
	Version      int      `json:"version"`
	Metric       string   `json:"metric"`
	FeatureNames []string `json:"feature_names"`
	Scaler       Scaler   `json:"scaler"`
	Tracks       []Track  `json:"tracks"`
}

// MetricEuclidean is the only distance metric the index supports.
const MetricEuclidean = "euclidean"

// LoadArtifact reads and validates a catalog artifact file.
// Any failure leaves the caller without a catalog; there is no partial load.
func LoadArtifact(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read artifact: %w", err)
	}

	var art Artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("catalog: decode artifact: %w", err)
	}

	if art.Version != ArtifactVersion {
		return nil, fmt.Errorf("catalog: artifact version %d, want %d", art.Version, ArtifactVersion)
	}
	if art.Metric != MetricEuclidean {
		return nil, fmt.Errorf("catalog: unsupported metric %q", art.Metric)
	}

	store, err := NewStore(art.Tracks, art.FeatureNames, art.Scaler)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// SaveArtifact writes a catalog artifact to disk. Used by the trainer.
func SaveArtifact(path string, art *Artifact) error {
	raw, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog: encode artifact: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("catalog: write artifact: %w", err)
	}
	return nil
}
