// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tunecarta/tunecarta/internal/database"
	"github.com/tunecarta/tunecarta/internal/logging"
	"github.com/tunecarta/tunecarta/internal/metrics"
	"github.com/tunecarta/tunecarta/internal/models"
)

// HistoryUpload ingests a listening-history CSV export.
//
// Method: POST
// Path: /api/v1/history/upload
//
// The upload is a multipart form with the export under the "file" field.
// Each upload replaces the previous dataset in one transaction; a failed
// upload leaves the old data untouched.
func (h *Handler) HistoryUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.config.API.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Expected a CSV upload under the 'file' form field", err)
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close upload file")
		}
	}()

	tracks, err := database.ParseHistoryCSV(file)
	if err != nil {
		var missing *database.MissingColumnsError
		switch {
		case errors.As(err, &missing):
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", missing.Error(), nil)
		case errors.Is(err, database.ErrEmptyCSV):
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"The uploaded CSV has no usable data rows", nil)
		default:
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"Could not parse the uploaded CSV", err)
		}
		return
	}

	if err := h.db.ReplaceHistory(r.Context(), tracks); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to store the uploaded history", err)
		return
	}

	metrics.RecordUpload(len(tracks), time.Since(start))
	logging.Info().
		Str("filename", sanitizeLogValue(header.Filename)).
		Int("rows", len(tracks)).
		Msg("Listening history uploaded")

	respondData(w, summarize(tracks), start)
}

// summarize derives the upload summary from the parsed rows.
func summarize(tracks []models.HistoryTrack) models.UploadSummary {
	s := models.UploadSummary{RowsIngested: len(tracks)}

	artists := make(map[string]struct{}, len(tracks))
	var popularitySum float64
	for i := range tracks {
		tr := &tracks[i]
		artists[tr.ArtistNames] = struct{}{}
		s.TotalDurationMS += tr.DurationMS
		popularitySum += tr.Popularity
		if tr.Explicit {
			s.ExplicitCount++
		}
	}
	s.UniqueArtists = len(artists)
	if len(tracks) > 0 {
		s.AvgPopularity = popularitySum / float64(len(tracks))
	}
	return s
}
