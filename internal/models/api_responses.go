// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package models

import (
	"time"

	"github.com/tomtom215/soundalike/internal/recommend"
)

// APIResponse is the envelope every HTTP endpoint responds with.
//
// Status is "success" with Data set, or "error" with Error set:
//
//	{
//	  "status": "success",
//	  "data": {"song": "X", "k": 5, "results": [...]},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z", "query_time_ms": 3}
//	}
//
//	{
//	  "status": "error",
//	  "error": {"code": "SONG_NOT_FOUND", "message": "song \"Nope\" not found"},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine readable error code with a message and optional details.
//
// Codes:
//   - VALIDATION_ERROR: bad query parameter
//   - SONG_NOT_FOUND, USER_NOT_FOUND: unknown lookup key
//   - DATASET_SCHEMA_ERROR: dataset is missing required columns
//   - DATASET_EMPTY: dataset has no rows
//   - NOT_CONFIGURED: the dataset for this query is not configured
//   - RATE_LIMIT_EXCEEDED, INTERNAL_ERROR
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SimilarSongsResponse is the payload of GET /songs/{name}/similar.
type SimilarSongsResponse struct {
	Song    string                     `json:"song"`
	K       int                        `json:"k"`
	Results []recommend.Recommendation `json:"results"`
}

// TopPlayedResponse is the payload of GET /users/{userID}/top.
type TopPlayedResponse struct {
	User    string                `json:"user"`
	K       int                   `json:"k"`
	Results []recommend.PlayCount `json:"results"`
}

// SongListResponse is the payload of GET /songs.
type SongListResponse struct {
	Total int      `json:"total"`
	Songs []string `json:"songs"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status string  `json:"status"`
	Ready  bool    `json:"ready"`
	Uptime float64 `json:"uptime_seconds"`

	// Models is set on the readiness check.
	Models interface{} `json:"models,omitempty"`
}
