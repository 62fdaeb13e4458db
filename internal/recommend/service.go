// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package recommend

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunecarta/tunecarta/internal/catalog"
	"github.com/tunecarta/tunecarta/internal/logging"
)

// overfetchFactor is how many extra neighbors the service requests beyond
// topK, so exclusion of rated tracks still leaves enough results.
const overfetchFactor = 2

// Rating is one track score on the 1..5 scale.
type Rating struct {
	TrackID string
	Score   int
}

// Scored is a recommended track with its similarity score.
// Similarity is 1 - distance: a relative ranking score, not a probability,
// and can fall below zero for distant tracks.
type Scored struct {
	Track      catalog.Track
	Similarity float64
}

// Result is a recommendation batch.
type Result struct {
	Tracks []Scored

	// BasedOn is the number of ratings actually used after dropping
	// unknown track IDs.
	BasedOn int
}

// Service answers recommendation and sampling queries over one immutable
// catalog. All methods are safe for concurrent use; the only mutable state
// is the sampling RNG, which has its own lock.
type Service struct {
	store  *catalog.Store
	index  *Index
	logger zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService builds a service over the given catalog.
// seed fixes the rating-prompt RNG; pass 0 to seed from the current time.
func NewService(store *catalog.Store, seed int64) *Service {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Service{
		store:  store,
		index:  NewIndex(store),
		logger: logging.WithComponent("recommend"),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // sampling, not crypto
	}
}

// CatalogSize returns the number of tracks in the catalog.
func (s *Service) CatalogSize() int {
	return s.store.Len()
}

// Recommend turns a rating batch into the topK nearest unrated tracks.
//
// Ratings whose track ID is not in the catalog are dropped silently; the
// response's BasedOn reports how many survived. Rated tracks never appear
// in the result. topK beyond the catalog size is clamped. The result can
// hold fewer than topK tracks when exclusion eats through the overfetch
// headroom.
func (s *Service) Recommend(ctx context.Context, ratings []Rating, topK int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vectors := make([][]float64, 0, len(ratings))
	scores := make([]int, 0, len(ratings))
	rated := make(map[int]struct{}, len(ratings))

	for _, r := range ratings {
		pos, ok := s.store.PosByID(r.TrackID)
		if !ok {
			s.logger.Debug().Str("track_id", r.TrackID).Msg("Dropping rating for unknown track")
			continue
		}
		vectors = append(vectors, s.store.At(pos).Vector)
		scores = append(scores, r.Score)
		rated[pos] = struct{}{}
	}

	profile, err := buildProfile(vectors, scores, s.store.Dim())
	if err != nil {
		return nil, err
	}

	neighbors, err := s.index.Query(profile, topK*overfetchFactor)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Tracks:  make([]Scored, 0, topK),
		BasedOn: len(scores),
	}
	for _, n := range neighbors {
		if _, ok := rated[n.Pos]; ok {
			continue
		}
		result.Tracks = append(result.Tracks, Scored{
			Track:      s.store.At(n.Pos),
			Similarity: 1 - n.Distance,
		})
		if len(result.Tracks) == topK {
			break
		}
	}

	s.logger.Debug().
		Int("based_on", result.BasedOn).
		Int("returned", len(result.Tracks)).
		Int("top_k", topK).
		Msg("Recommendation batch served")

	return result, nil
}

// Sample returns n distinct catalog tracks in random order for the rating
// prompt. n beyond the catalog size is clamped; n < 1 returns nil.
func (s *Service) Sample(n int) []catalog.Track {
	if n < 1 {
		return nil
	}
	if n > s.store.Len() {
		n = s.store.Len()
	}

	s.rngMu.Lock()
	perm := s.rng.Perm(s.store.Len())
	s.rngMu.Unlock()

	out := make([]catalog.Track, n)
	for i := 0; i < n; i++ {
		out[i] = s.store.At(perm[i])
	}
	return out
}
