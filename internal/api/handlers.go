// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package api

import (
	"time"

	"github.com/tunecarta/tunecarta/internal/config"
	"github.com/tunecarta/tunecarta/internal/database"
	"github.com/tunecarta/tunecarta/internal/recommend"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - helpers.go: shared response and parameter helpers
//   - handlers_health.go: health and probe endpoints
//   - handlers_history.go: listening history upload
//   - handlers_analytics.go: analytics endpoints
//   - handlers_recommend.go: rating prompt and recommendations
type Handler struct {
	db        *database.DB
	recs      *recommend.Handle
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// The recommendation handle may still be empty at construction; the catalog
// loader publishes into it once the artifact is verified. Handlers observe
// readiness per request.
func NewHandler(db *database.DB, recs *recommend.Handle, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		recs:      recs,
		config:    cfg,
		startTime: time.Now(),
	}
}
