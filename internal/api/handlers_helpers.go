// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/soundalike/internal/logging"
	"github.com/tomtom215/soundalike/internal/models"
	"github.com/tomtom215/soundalike/internal/validation"
)

// sanitizeLogValue escapes control characters so request input cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes response with an ETag. A matching If-None-Match gets
// 304 with no body.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	if r != nil && response.Metadata.RequestID == "" {
		response.Metadata.RequestID = logging.RequestIDFromContext(r.Context())
	}

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if w.Header().Get("Cache-Control") == "" {
		w.Header().Set("Cache-Control", "no-cache")
	}

	// Data payloads only; timestamps would make every ETag unique.
	if status == http.StatusOK {
		etag := generateETag(response.Data)
		w.Header().Set("ETag", etag)
		if r != nil && r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag hashes the JSON encoding of data with FNV-1a.
func generateETag(data interface{}) string {
	encoded, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write(encoded)
	return `"` + strconv.FormatUint(uint64(h.Sum32()), 16) + `"`
}

func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, start time.Time) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error response. err is logged, never sent.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error, details map[string]interface{}) {
	if err != nil {
		event := logging.Error()
		if r != nil {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// validateRequest validates a struct using go-playground/validator.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// pathParam returns the unescaped URL parameter key. chi routes on the raw
// path when it differs from the decoded one, e.g. for names containing "%2F".
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

// intParam parses an optional integer query parameter. Missing means 0.
func intParam(r *http.Request, key string) (int, *models.APIError) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &models.APIError{
			Code:    validation.CodeValidationError,
			Message: fmt.Sprintf("%s must be an integer", key),
			Details: map[string]interface{}{"field": key, "value": sanitizeLogValue(value)},
		}
	}
	return n, nil
}
