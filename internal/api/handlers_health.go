// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package api

import (
	"net/http"
	"time"

	"github.com/tunecarta/tunecarta/internal/models"
)

// Version is the reported application version.
const Version = "1.0.0"

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	RecommenderReady  bool    `json:"recommender_ready"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// Health returns overall service health.
//
// The recommender being absent degrades the status but does not fail the
// check; analytics keep working without a catalog.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil
	recsReady := h.recs != nil && h.recs.Ready()

	status := "healthy"
	if !dbConnected {
		status = "unhealthy"
	} else if !recsReady {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: HealthStatus{
			Status:            status,
			Version:           Version,
			DatabaseConnected: dbConnected,
			RecommenderReady:  recsReady,
			UptimeSeconds:     time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 only when the database answers; 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil || h.db.Ping(r.Context()) != nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"Database is not reachable", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready":             true,
			"recommender_ready": h.recs != nil && h.recs.Ready(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}
