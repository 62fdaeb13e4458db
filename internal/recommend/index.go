// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

// Package recommend implements the ratings-driven track recommender.
//
// A rating batch is turned into a single taste-profile vector (signed
// weighted mean of the rated tracks' feature vectors), the profile is run
// through an exact nearest-neighbor search over the catalog, rated tracks
// are excluded, and the top results come back with a similarity score.
//
// The index and catalog are built once and never mutated; a Handle publishes
// them atomically so request handlers read without locks.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/tunecarta/tunecarta/internal/catalog"
)

// Neighbor is one index hit: a catalog position and its Euclidean distance
// from the query vector.
type Neighbor struct {
	Pos      int
	Distance float64
}

// Index is an exact brute-force nearest-neighbor index over the catalog's
// standardized vectors. Catalog sizes here are tens of thousands of tracks
// at most; a linear scan beats approximate structures at that scale and
// never returns a wrong neighbor.
type Index struct {
	vectors [][]float64
	dim     int
}

// NewIndex builds an index over the store's vectors.
// Positions in query results are positions in the store.
func NewIndex(store *catalog.Store) *Index {
	vectors := make([][]float64, store.Len())
	for i := range vectors {
		vectors[i] = store.At(i).Vector
	}
	return &Index{vectors: vectors, dim: store.Dim()}
}

// Dim returns the vector dimension the index was built for.
func (ix *Index) Dim() int {
	return ix.dim
}

// Query returns the k nearest catalog positions to the query vector,
// ordered by ascending distance. Ties resolve to the earlier catalog
// position. k larger than the catalog is clamped; k < 1 is an error.
func (ix *Index) Query(query []float64, k int) ([]Neighbor, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: got %d, index dimension %d", ErrInvalidDimension, len(query), ix.dim)
	}
	if k < 1 {
		return nil, fmt.Errorf("recommend: k must be >= 1, got %d", k)
	}
	if k > len(ix.vectors) {
		k = len(ix.vectors)
	}

	neighbors := make([]Neighbor, len(ix.vectors))
	for i, vec := range ix.vectors {
		neighbors[i] = Neighbor{Pos: i, Distance: euclidean(query, vec)}
	}

	// Stable keeps insertion order within equal distances
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].Distance < neighbors[b].Distance
	})

	return neighbors[:k], nil
}

// euclidean computes the Euclidean distance between two equal-length vectors.
func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
