// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tunecarta/tunecarta/internal/catalog"
	"github.com/tunecarta/tunecarta/internal/recommend"
)

func writeTestArtifact(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.json")
	art := &catalog.Artifact{
		Version:      catalog.ArtifactVersion,
		Metric:       catalog.MetricEuclidean,
		FeatureNames: []string{"danceability", "energy"},
		Scaler:       catalog.Scaler{Means: []float64{0, 0}, Scales: []float64{1, 1}},
		Tracks: []catalog.Track{
			{ID: "a", TrackName: "A", ArtistNames: "X", Vector: []float64{0, 0}},
			{ID: "b", TrackName: "B", ArtistNames: "Y", Vector: []float64{1, 1}},
		},
	}
	if err := catalog.SaveArtifact(path, art); err != nil {
		t.Fatalf("SaveArtifact() failed: %v", err)
	}
	return path
}

func TestCatalogLoaderServicePublishes(t *testing.T) {
	handle := recommend.NewHandle()
	svc := NewCatalogLoaderService(writeTestArtifact(t), 1, handle)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for !handle.Ready() {
		select {
		case <-deadline:
			t.Fatal("catalog was not published in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rec, err := handle.Get()
	if err != nil {
		t.Fatalf("Get() failed after publish: %v", err)
	}
	if rec.CatalogSize() != 2 {
		t.Errorf("CatalogSize() = %d, want 2", rec.CatalogSize())
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestCatalogLoaderServiceMissingArtifact(t *testing.T) {
	handle := recommend.NewHandle()
	svc := NewCatalogLoaderService(filepath.Join(t.TempDir(), "missing.json"), 1, handle)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("Serve() = nil, want load error")
	}
	if handle.Ready() {
		t.Error("handle should not be ready after a failed load")
	}
}
