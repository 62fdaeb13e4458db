// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package services

import (
	"context"
	"fmt"

	"github.com/tunecarta/tunecarta/internal/catalog"
	"github.com/tunecarta/tunecarta/internal/logging"
	"github.com/tunecarta/tunecarta/internal/metrics"
	"github.com/tunecarta/tunecarta/internal/recommend"
)

// CatalogLoaderService loads the recommendation catalog artifact and
// publishes the built service through the handle.
//
// Running under the data-layer supervisor gives artifact loading retry
// semantics for free: a missing or corrupt artifact makes Serve return an
// error, suture restarts it with backoff, and the API keeps serving with
// recommendations reporting unavailable until a load succeeds.
type CatalogLoaderService struct {
	artifactPath string
	seed         int64
	handle       *recommend.Handle
	name         string
}

// NewCatalogLoaderService creates a catalog loader for the given artifact path.
func NewCatalogLoaderService(artifactPath string, seed int64, handle *recommend.Handle) *CatalogLoaderService {
	return &CatalogLoaderService{
		artifactPath: artifactPath,
		seed:         seed,
		handle:       handle,
		name:         "catalog-loader",
	}
}

// Serve implements suture.Service. On success it publishes the service and
// parks until shutdown; returning would make the supervisor restart it.
func (c *CatalogLoaderService) Serve(ctx context.Context) error {
	logger := logging.WithComponent("catalog")

	if !c.handle.Ready() {
		store, err := catalog.LoadArtifact(c.artifactPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", c.artifactPath).
				Msg("Catalog artifact not loadable, recommendations unavailable")
			return fmt.Errorf("load catalog: %w", err)
		}

		c.handle.Publish(recommend.NewService(store, c.seed))
		metrics.CatalogTracks.Set(float64(store.Len()))
		logger.Info().Int("tracks", store.Len()).Str("path", c.artifactPath).
			Msg("Catalog published")
	}

	<-ctx.Done()
	return ctx.Err()
}

// String implements fmt.Stringer for logging.
func (c *CatalogLoaderService) String() string {
	return c.name
}
