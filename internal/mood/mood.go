// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

// Package mood derives a coarse mood label from a track's audio features.
//
// The heuristic scores four candidate moods as weighted blends of valence,
// energy, danceability, acousticness, and tempo, then picks the highest.
// It exists for human-readable analytics, not for ranking; the recommender
// works on the raw feature vectors.
package mood

import "math"

// Mood is a coarse emotional label for a track.
type Mood int

const (
	Happy Mood = iota
	Sad
	Energetic
	Chill
)

// String returns the lowercase label used in API responses and storage.
func (m Mood) String() string {
	switch m {
	case Happy:
		return "happy"
	case Sad:
		return "sad"
	case Energetic:
		return "energetic"
	case Chill:
		return "chill"
	default:
		return "unknown"
	}
}

// Features holds the audio features the heuristic reads.
// Values are on the provider's 0..1 scale, tempo in BPM.
type Features struct {
	Valence      float64
	Energy       float64
	Danceability float64
	Acousticness float64
	Tempo        float64
}

// Neutral values used when an export omits a feature column.
const (
	DefaultFeature = 0.5
	DefaultTempo   = 120.0
)

// DefaultFeatures returns the neutral feature set.
func DefaultFeatures() Features {
	return Features{
		Valence:      DefaultFeature,
		Energy:       DefaultFeature,
		Danceability: DefaultFeature,
		Acousticness: DefaultFeature,
		Tempo:        DefaultTempo,
	}
}

// Predict scores each candidate mood and returns the highest.
// Ties resolve to the earliest mood in declaration order.
func Predict(f Features) Mood {
	// Tempo normalized to 0..1 with 200 BPM as the ceiling
	tempoNorm := math.Min(f.Tempo/200.0, 1.0)

	scores := [...]float64{
		Happy:     0.4*f.Valence + 0.3*f.Energy + 0.3*f.Danceability,
		Sad:       0.5*(1-f.Valence) + 0.3*(1-f.Energy) + 0.2*f.Acousticness,
		Energetic: 0.5*f.Energy + 0.3*f.Danceability + 0.2*tempoNorm,
		Chill:     0.4*f.Acousticness + 0.4*(1-f.Energy) + 0.2*(1-f.Danceability),
	}

	best := Happy
	for m := Sad; m <= Chill; m++ {
		if scores[m] > scores[best] {
			best = m
		}
	}
	return best
}
