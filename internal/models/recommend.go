// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package models

// RatingPromptTrack is one catalog track offered for rating.
type RatingPromptTrack struct {
	TrackID     string `json:"track_id"`
	TrackName   string `json:"track_name"`
	ArtistNames string `json:"artist_names"`
	Genre       string `json:"genre,omitempty"`
	Year        int    `json:"year,omitempty"`
}

// TrackRating is one submitted rating on the 1..5 scale.
type TrackRating struct {
	TrackID string `json:"track_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// RatingsRequest is the body of POST /api/v1/recommend/ratings.
type RatingsRequest struct {
	Ratings []TrackRating `json:"ratings" validate:"required,min=1,dive"`
	TopK    int           `json:"top_k" validate:"omitempty,min=1"`
}

// RecommendedTrack is one recommendation with its similarity score.
// Similarity is 1 - distance; it is a relative ranking score and can fall
// outside [0, 1] for distant catalog items.
type RecommendedTrack struct {
	TrackID     string  `json:"track_id"`
	TrackName   string  `json:"track_name"`
	ArtistNames string  `json:"artist_names"`
	Genre       string  `json:"genre,omitempty"`
	Year        int     `json:"year,omitempty"`
	Popularity  float64 `json:"popularity"`
	Similarity  float64 `json:"similarity"`
}

// RecommendationsResponse is the payload of POST /api/v1/recommend/ratings.
type RecommendationsResponse struct {
	Recommendations []RecommendedTrack `json:"recommendations"`
	Count           int                `json:"count"`
	BasedOn         int                `json:"based_on"`
	Source          string             `json:"source"`
}
