// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

/*
Package api serves the recommender over HTTP.

Routes are registered on a chi router. Every response uses the
models.APIResponse envelope encoded with goccy/go-json.

Endpoints:

	GET  /api/v1/songs                        song names in catalog order
	GET  /api/v1/songs/{name}                 song details
	GET  /api/v1/songs/{name}/similar?k=      content recommendations
	GET  /api/v1/users/{userID}/top?k=        most played songs
	GET  /api/v1/users/{userID}/summary?k=    listening summary
	GET  /api/v1/stats                        catalog totals
	GET  /api/v1/stats/top-artists?n=         artists by song count
	GET  /api/v1/stats/top-songs?n=           songs by popularity
	POST /api/v1/refresh                      reload every dataset
	GET  /health/live, /health/ready          health checks
	GET  /metrics                             Prometheus exposition

Library errors map to status codes in errors.go: unknown songs and users
are 404, dataset schema and empty dataset failures are 503.
*/
package api
