// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tunecarta/tunecarta/internal/metrics"
)

// This file contains the analytics endpoints over the uploaded listening
// history. Every endpoint answers 400 NO_DATA until a history has been
// uploaded; an empty dashboard is a client state, not a server error.

// executeAnalytics runs one analytics query with the shared guard, timing,
// and error mapping.
func (h *Handler) executeAnalytics(w http.ResponseWriter, r *http.Request, operation string, query func(ctx context.Context) (interface{}, error)) {
	start := time.Now()

	hasData, err := h.db.HasData(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to check for uploaded history", err)
		return
	}
	if !hasData {
		respondError(w, http.StatusBadRequest, "NO_DATA",
			"No listening history uploaded yet", nil)
		return
	}

	data, err := query(r.Context())
	metrics.RecordDBQuery(operation, time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Analytics query failed", err)
		return
	}

	respondData(w, data, start)
}

// AnalyticsStats returns the library-wide summary.
//
// Method: GET
// Path: /api/v1/analytics/stats
func (h *Handler) AnalyticsStats(w http.ResponseWriter, r *http.Request) {
	h.executeAnalytics(w, r, "stats", func(ctx context.Context) (interface{}, error) {
		return h.db.Stats(ctx)
	})
}

// AnalyticsTopTracks returns the most popular tracks.
//
// Method: GET
// Path: /api/v1/analytics/top-tracks?n=15
func (h *Handler) AnalyticsTopTracks(w http.ResponseWriter, r *http.Request) {
	n := clampListSize(
		getIntParam(r, "n", h.config.API.DefaultTopTracks),
		h.config.API.MaxListSize,
	)
	h.executeAnalytics(w, r, "top_tracks", func(ctx context.Context) (interface{}, error) {
		return h.db.TopTracks(ctx, n)
	})
}

// AnalyticsTopArtists returns the artists with the most tracks.
//
// Method: GET
// Path: /api/v1/analytics/top-artists?n=12
func (h *Handler) AnalyticsTopArtists(w http.ResponseWriter, r *http.Request) {
	n := clampListSize(
		getIntParam(r, "n", h.config.API.DefaultTopArtists),
		h.config.API.MaxListSize,
	)
	h.executeAnalytics(w, r, "top_artists", func(ctx context.Context) (interface{}, error) {
		return h.db.TopArtists(ctx, n)
	})
}

// AnalyticsMoodDistribution returns track counts per derived mood.
//
// Method: GET
// Path: /api/v1/analytics/mood-distribution
func (h *Handler) AnalyticsMoodDistribution(w http.ResponseWriter, r *http.Request) {
	h.executeAnalytics(w, r, "mood_distribution", func(ctx context.Context) (interface{}, error) {
		return h.db.MoodDistribution(ctx)
	})
}

// AnalyticsGenreDistribution returns the top genre buckets after splitting
// the comma-separated genre lists.
//
// Method: GET
// Path: /api/v1/analytics/genre-distribution
func (h *Handler) AnalyticsGenreDistribution(w http.ResponseWriter, r *http.Request) {
	h.executeAnalytics(w, r, "genre_distribution", func(ctx context.Context) (interface{}, error) {
		return h.db.GenreDistribution(ctx, h.config.API.GenreLimit)
	})
}

// AnalyticsTemporal returns yearly and monthly added-at trends.
//
// Method: GET
// Path: /api/v1/analytics/temporal
func (h *Handler) AnalyticsTemporal(w http.ResponseWriter, r *http.Request) {
	h.executeAnalytics(w, r, "temporal", func(ctx context.Context) (interface{}, error) {
		return h.db.Temporal(ctx)
	})
}

// AnalyticsPopularityDistribution returns the low/medium/high popularity bands.
//
// Method: GET
// Path: /api/v1/analytics/popularity-distribution
func (h *Handler) AnalyticsPopularityDistribution(w http.ResponseWriter, r *http.Request) {
	h.executeAnalytics(w, r, "popularity_distribution", func(ctx context.Context) (interface{}, error) {
		return h.db.PopularityDistribution(ctx)
	})
}

// AnalyticsAudioFeatures returns library-wide audio feature means.
//
// Method: GET
// Path: /api/v1/analytics/audio-features
func (h *Handler) AnalyticsAudioFeatures(w http.ResponseWriter, r *http.Request) {
	h.executeAnalytics(w, r, "audio_features", func(ctx context.Context) (interface{}, error) {
		return h.db.AudioFeatures(ctx)
	})
}

// AnalyticsExplicit returns the explicit versus clean breakdown.
//
// Method: GET
// Path: /api/v1/analytics/explicit
func (h *Handler) AnalyticsExplicit(w http.ResponseWriter, r *http.Request) {
	h.executeAnalytics(w, r, "explicit_stats", func(ctx context.Context) (interface{}, error) {
		return h.db.ExplicitStats(ctx)
	})
}
