// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package recommend

import (
	"errors"
	"math"
	"testing"
)

func TestBuildProfileSingleMaxRating(t *testing.T) {
	// One track rated 5: weight 2, profile lands on the track itself
	got, err := buildProfile([][]float64{{0.2, 0.8}}, []int{5}, 2)
	if err != nil {
		t.Fatalf("buildProfile() failed: %v", err)
	}
	if math.Abs(got[0]-0.2) > 1e-12 || math.Abs(got[1]-0.8) > 1e-12 {
		t.Errorf("profile = %v, want [0.2 0.8]", got)
	}
}

func TestBuildProfileWeightedMean(t *testing.T) {
	// Weights: 5->+2, 4->+1. profile = (2*[1,0] + 1*[0,3]) / 3 = [2/3, 1]
	vectors := [][]float64{{1, 0}, {0, 3}}
	got, err := buildProfile(vectors, []int{5, 4}, 2)
	if err != nil {
		t.Fatalf("buildProfile() failed: %v", err)
	}
	if math.Abs(got[0]-2.0/3.0) > 1e-12 || math.Abs(got[1]-1) > 1e-12 {
		t.Errorf("profile = %v, want [0.667 1]", got)
	}
}

func TestBuildProfileNegativeWeights(t *testing.T) {
	// 1 -> weight -2. profile = (-2*[4,4]) / -2 = [4,4]
	got, err := buildProfile([][]float64{{4, 4}}, []int{1}, 2)
	if err != nil {
		t.Fatalf("buildProfile() failed: %v", err)
	}
	if got[0] != 4 || got[1] != 4 {
		t.Errorf("profile = %v, want [4 4]", got)
	}
}

func TestBuildProfileEmpty(t *testing.T) {
	_, err := buildProfile(nil, nil, 2)
	if !errors.Is(err, ErrEmptyRatings) {
		t.Errorf("err = %v, want ErrEmptyRatings", err)
	}
}

func TestBuildProfileDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float64
		scores  []int
	}{
		{"all neutral", [][]float64{{1, 1}, {2, 2}}, []int{3, 3}},
		{"cancelling pair", [][]float64{{1, 0}, {0, 1}}, []int{4, 2}},
		{"cancelling quad", [][]float64{{1, 0}, {0, 1}, {1, 1}, {2, 2}}, []int{5, 5, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildProfile(tt.vectors, tt.scores, 2)
			if !errors.Is(err, ErrDegenerateWeights) {
				t.Errorf("err = %v, want ErrDegenerateWeights", err)
			}
		})
	}
}
