// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/tunecarta/tunecarta/internal/catalog"
)

func testStore(t *testing.T, vectors [][]float64) *catalog.Store {
	t.Helper()

	tracks := make([]catalog.Track, len(vectors))
	for i, v := range vectors {
		tracks[i] = catalog.Track{
			ID:        string(rune('a' + i)),
			TrackName: "Track " + string(rune('A'+i)),
			Vector:    v,
		}
	}
	dim := len(vectors[0])
	names := make([]string, dim)
	means := make([]float64, dim)
	scales := make([]float64, dim)
	for i := range names {
		names[i] = "f" + string(rune('0'+i))
		scales[i] = 1
	}

	store, err := catalog.NewStore(tracks, names, catalog.Scaler{Means: means, Scales: scales})
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	return store
}

func TestQueryOrdersByDistance(t *testing.T) {
	store := testStore(t, [][]float64{
		{0, 0}, {1, 0}, {0, 1}, {5, 5}, {5, 6},
	})
	ix := NewIndex(store)

	got, err := ix.Query([]float64{0, 0}, 3)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("got %d neighbors, want 3", len(got))
	}
	if got[0].Pos != 0 || got[0].Distance != 0 {
		t.Errorf("nearest = pos %d dist %f, want pos 0 dist 0", got[0].Pos, got[0].Distance)
	}
	// Positions 1 and 2 are both at distance 1; insertion order breaks the tie
	if got[1].Pos != 1 || got[2].Pos != 2 {
		t.Errorf("tie order = %d, %d, want 1, 2", got[1].Pos, got[2].Pos)
	}
	if got[1].Distance != 1 || got[2].Distance != 1 {
		t.Errorf("tie distances = %f, %f, want 1, 1", got[1].Distance, got[2].Distance)
	}
}

func TestQueryTieOrderIsStable(t *testing.T) {
	// Four tracks equidistant from the origin must come back in catalog order
	store := testStore(t, [][]float64{
		{1, 0}, {0, 1}, {-1, 0}, {0, -1},
	})
	ix := NewIndex(store)

	got, err := ix.Query([]float64{0, 0}, 4)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	for i, n := range got {
		if n.Pos != i {
			t.Errorf("position %d has pos %d, want %d", i, n.Pos, i)
		}
	}
}

func TestQueryClampsK(t *testing.T) {
	store := testStore(t, [][]float64{{0}, {1}, {2}})
	ix := NewIndex(store)

	got, err := ix.Query([]float64{0}, 50)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d neighbors, want entire catalog (3)", len(got))
	}
}

func TestQueryDimensionMismatch(t *testing.T) {
	store := testStore(t, [][]float64{{0, 0}, {1, 1}})
	ix := NewIndex(store)

	_, err := ix.Query([]float64{0, 0, 0}, 1)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("err = %v, want ErrInvalidDimension", err)
	}
}

func TestQueryRejectsNonPositiveK(t *testing.T) {
	store := testStore(t, [][]float64{{0}, {1}})
	ix := NewIndex(store)

	if _, err := ix.Query([]float64{0}, 0); err == nil {
		t.Error("expected error for k=0, got nil")
	}
}

func TestEuclidean(t *testing.T) {
	tests := []struct {
		a, b []float64
		want float64
	}{
		{[]float64{0, 0}, []float64{3, 4}, 5},
		{[]float64{1, 1}, []float64{1, 1}, 0},
		{[]float64{-1, 0}, []float64{1, 0}, 2},
	}
	for _, tt := range tests {
		if got := euclidean(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("euclidean(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
		}
	}
}
