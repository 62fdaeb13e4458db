// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tunecarta/tunecarta/internal/metrics"
	"github.com/tunecarta/tunecarta/internal/models"
	"github.com/tunecarta/tunecarta/internal/recommend"
)

// sourceCatalogKNN identifies the recommendation backend in responses.
const sourceCatalogKNN = "catalog_knn"

// RecommendSession returns a random catalog sample for the rating prompt.
//
// Method: GET
// Path: /api/v1/recommend/session?n=10
//
// Answers 503 until a catalog artifact has been published.
func (h *Handler) RecommendSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	svc, err := h.recs.Get()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"Recommendation catalog is not loaded", nil)
		return
	}

	n := clampListSize(
		getIntParam(r, "n", h.config.Recommend.SampleSize),
		h.config.API.MaxListSize,
	)

	sample := svc.Sample(n)
	prompt := make([]models.RatingPromptTrack, len(sample))
	for i, tr := range sample {
		prompt[i] = models.RatingPromptTrack{
			TrackID:     tr.ID,
			TrackName:   tr.TrackName,
			ArtistNames: tr.ArtistNames,
			Genre:       tr.Genre,
			Year:        tr.Year,
		}
	}

	respondData(w, map[string]interface{}{
		"tracks":       prompt,
		"catalog_size": svc.CatalogSize(),
	}, start)
}

// RecommendRatings scores a rating batch and returns the nearest unrated
// catalog tracks.
//
// Method: POST
// Path: /api/v1/recommend/ratings
func (h *Handler) RecommendRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	svc, err := h.recs.Get()
	if err != nil {
		metrics.RecordRecommendation("not_ready", 0)
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"Recommendation catalog is not loaded", nil)
		return
	}

	var req models.RatingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Request body is not valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	topK := req.TopK
	if topK == 0 {
		topK = h.config.Recommend.DefaultK
	}
	if topK > h.config.Recommend.MaxK {
		topK = h.config.Recommend.MaxK
	}

	ratings := make([]recommend.Rating, len(req.Ratings))
	for i, rt := range req.Ratings {
		ratings[i] = recommend.Rating{TrackID: rt.TrackID, Score: rt.Rating}
	}

	result, err := svc.Recommend(r.Context(), ratings, topK)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrEmptyRatings):
			metrics.RecordRecommendation("empty_ratings", 0)
			respondError(w, http.StatusBadRequest, "EMPTY_RATINGS",
				"No submitted rating matches a catalog track", nil)
		case errors.Is(err, recommend.ErrDegenerateWeights):
			metrics.RecordRecommendation("degenerate", 0)
			respondError(w, http.StatusBadRequest, "DEGENERATE_WEIGHTS",
				"Rating weights cancel out; rate at least one track away from 3", nil)
		default:
			metrics.RecordRecommendation("error", 0)
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Recommendation scoring failed", err)
		}
		return
	}

	recs := make([]models.RecommendedTrack, len(result.Tracks))
	for i, sc := range result.Tracks {
		recs[i] = models.RecommendedTrack{
			TrackID:     sc.Track.ID,
			TrackName:   sc.Track.TrackName,
			ArtistNames: sc.Track.ArtistNames,
			Genre:       sc.Track.Genre,
			Year:        sc.Track.Year,
			Popularity:  sc.Track.Popularity,
			Similarity:  sc.Similarity,
		}
	}

	metrics.RecordRecommendation("ok", time.Since(start))
	respondData(w, models.RecommendationsResponse{
		Recommendations: recs,
		Count:           len(recs),
		BasedOn:         result.BasedOn,
		Source:          sourceCatalogKNN,
	}, start)
}
