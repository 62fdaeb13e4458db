// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package recommend

import "math"

// Rating scale constants. The scale is fixed; the offline artifact's
// standardization assumes it, so it is not configurable.
const (
	// RatingMin and RatingMax bound the accepted score range.
	RatingMin = 1
	RatingMax = 5

	// ratingMidpoint is the neutral score. Scores above it pull the
	// profile toward a track, scores below push away from it.
	ratingMidpoint = 3
)

// weightSumEpsilon guards the profile division. Weight sums are small
// integers in exact arithmetic, so anything below this is a true
// cancellation, not rounding noise.
const weightSumEpsilon = 1e-9

// buildProfile computes the signed weighted mean of the rated vectors:
//
//	profile[j] = sum_i w_i * v_i[j] / sum_i w_i,  w_i = score_i - midpoint
//
// A track rated 1 contributes with weight -2, pushing the profile away from
// it. Returns ErrEmptyRatings for an empty input and ErrDegenerateWeights
// when the weights cancel.
func buildProfile(vectors [][]float64, scores []int, dim int) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyRatings
	}

	var weightSum float64
	profile := make([]float64, dim)

	for i, vec := range vectors {
		w := float64(scores[i] - ratingMidpoint)
		weightSum += w
		for j, v := range vec {
			profile[j] += w * v
		}
	}

	if math.Abs(weightSum) < weightSumEpsilon {
		return nil, ErrDegenerateWeights
	}

	for j := range profile {
		profile[j] /= weightSum
	}
	return profile, nil
}
