// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package models

// LibraryStats summarizes the uploaded listening history.
type LibraryStats struct {
	TotalTracks      int     `json:"total_tracks"`
	UniqueArtists    int     `json:"unique_artists"`
	TotalDurationMS  int64   `json:"total_duration_ms"`
	TotalHours       float64 `json:"total_hours"`
	AvgPopularity    float64 `json:"avg_popularity"`
	MedianPopularity float64 `json:"median_popularity"`
	MinPopularity    float64 `json:"min_popularity"`
	MaxPopularity    float64 `json:"max_popularity"`
	ExplicitCount    int     `json:"explicit_count"`
}

// TopTrack is one entry in the top-tracks ranking (by popularity).
type TopTrack struct {
	TrackName   string  `json:"track_name"`
	ArtistNames string  `json:"artist_names"`
	Popularity  float64 `json:"popularity"`
	DurationMS  int64   `json:"duration_ms"`
	Mood        string  `json:"mood,omitempty"`
}

// TopArtist is one entry in the top-artists ranking (by track count).
type TopArtist struct {
	Artist     string  `json:"artist"`
	TrackCount int     `json:"track_count"`
	Percentage float64 `json:"percentage"`
}

// DistributionEntry is a labeled bucket with its share of the library.
// Used for mood, genre, and popularity-band distributions.
type DistributionEntry struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PeriodCount is a track count for one calendar period ("2024" or "2024-06").
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// TemporalTrends holds yearly and monthly added-at counts.
type TemporalTrends struct {
	Yearly  []PeriodCount `json:"yearly"`
	Monthly []PeriodCount `json:"monthly"`
}

// AudioFeatureAverages holds the library-wide mean of each audio feature.
type AudioFeatureAverages struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Loudness         float64 `json:"loudness"`
	Tempo            float64 `json:"tempo"`
}

// ExplicitBreakdown splits the library into explicit and clean tracks.
type ExplicitBreakdown struct {
	Explicit    int     `json:"explicit"`
	Clean       int     `json:"clean"`
	ExplicitPct float64 `json:"explicit_pct"`
}
