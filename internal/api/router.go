// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from a handler and a middleware factory.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled

	// Health endpoints: permissive rate limit for monitoring pollers.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// History upload: strict rate limit, each upload rewrites the dataset.
	r.Route("/api/v1/history", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitUpload))
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())
		r.Post("/upload", router.handler.HistoryUpload)
	})

	// Analytics endpoints: read-only, dashboard loads them all at once.
	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitAnalytics))
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Get("/stats", router.handler.AnalyticsStats)
		r.Get("/top-tracks", router.handler.AnalyticsTopTracks)
		r.Get("/top-artists", router.handler.AnalyticsTopArtists)
		r.Get("/mood-distribution", router.handler.AnalyticsMoodDistribution)
		r.Get("/genre-distribution", router.handler.AnalyticsGenreDistribution)
		r.Get("/temporal", router.handler.AnalyticsTemporal)
		r.Get("/popularity-distribution", router.handler.AnalyticsPopularityDistribution)
		r.Get("/audio-features", router.handler.AnalyticsAudioFeatures)
		r.Get("/explicit", router.handler.AnalyticsExplicit)
	})

	// Recommendation endpoints.
	r.Route("/api/v1/recommend", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Get("/session", router.handler.RecommendSession)
		r.Post("/ratings", router.handler.RecommendRatings)
	})

	// Prometheus metrics endpoint.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
