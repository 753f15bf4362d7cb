// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/soundalike/internal/middleware"
)

// Router wires the handler and middleware onto a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil config uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, config *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(config),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(AccessLog())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil, nil)
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Route("/songs", func(r chi.Router) {
			r.Get("/", router.handler.Songs)
			r.Get("/{name}", router.handler.Song)
			r.Get("/{name}/similar", router.handler.SimilarSongs)
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/top", router.handler.TopPlayed)
			r.Get("/summary", router.handler.ListeningSummary)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", router.handler.Stats)
			r.Get("/top-artists", router.handler.TopArtists)
			r.Get("/top-songs", router.handler.TopSongs)
		})

		r.Post("/refresh", router.handler.Refresh)
	})

	return r
}
