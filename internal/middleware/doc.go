// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

/*
Package middleware provides transport level HTTP middleware in chi's
func(http.Handler) http.Handler form.

  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern
  - Compression: gzip response bodies for clients that accept it

Request IDs, CORS and rate limiting live in package api, which wires them
from configuration:

	r.Use(api.RequestIDWithLogging())
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(mw.RateLimit())
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(middleware.Compression)
	    ...
	})
*/
package middleware
