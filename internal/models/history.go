// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package models

import "time"

// HistoryTrack is one row of the uploaded listening history.
//
// Required CSV columns: Track Name, Artist Name(s), Duration (ms), Popularity.
// Everything else is optional; audio features default to neutral values when
// the export omits them.
type HistoryTrack struct {
	TrackID     string    `json:"track_id,omitempty"`
	TrackName   string    `json:"track_name"`
	ArtistNames string    `json:"artist_names"`
	AlbumName   string    `json:"album_name,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	Popularity  float64   `json:"popularity"`
	Explicit    bool      `json:"explicit"`
	AddedAt     time.Time `json:"added_at,omitempty"`
	Genres      string    `json:"genres,omitempty"`

	// Audio features on the provider's 0..1 scale (tempo in BPM).
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Loudness         float64 `json:"loudness"`
	Tempo            float64 `json:"tempo"`

	// Mood is derived at ingest time from the audio features.
	Mood string `json:"mood"`
}

// UploadSummary is returned after a successful history upload.
type UploadSummary struct {
	RowsIngested    int     `json:"rows_ingested"`
	UniqueArtists   int     `json:"unique_artists"`
	TotalDurationMS int64   `json:"total_duration_ms"`
	AvgPopularity   float64 `json:"avg_popularity"`
	ExplicitCount   int     `json:"explicit_count"`
}
