// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package recommend

import "errors"

var (
	// ErrNotReady is returned while no catalog has been published.
	// The HTTP layer maps this to 503.
	ErrNotReady = errors.New("recommend: no catalog loaded")

	// ErrEmptyRatings is returned when no usable ratings remain after
	// dropping unknown track IDs.
	ErrEmptyRatings = errors.New("recommend: no usable ratings")

	// ErrDegenerateWeights is returned when the rating weights cancel to
	// zero and no taste profile can be formed.
	ErrDegenerateWeights = errors.New("recommend: rating weights sum to zero")

	// ErrInvalidDimension is returned when a query vector does not match
	// the index dimension.
	ErrInvalidDimension = errors.New("recommend: query dimension mismatch")
)
