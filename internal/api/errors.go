// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/soundalike/internal/dataset"
	"github.com/tomtom215/soundalike/internal/library"
	"github.com/tomtom215/soundalike/internal/recommend"
)

// Error codes returned in APIError.Code.
const (
	CodeSongNotFound      = "SONG_NOT_FOUND"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeSchemaError       = "DATASET_SCHEMA_ERROR"
	CodeDatasetEmpty      = "DATASET_EMPTY"
	CodeNotConfigured     = "NOT_CONFIGURED"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// respondLibraryError maps a library error to a status code and error body.
func respondLibraryError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		itemErr   *recommend.ItemNotFoundError
		userErr   *recommend.UserNotFoundError
		schemaErr *dataset.MissingFieldError
	)

	switch {
	case errors.As(err, &itemErr):
		respondError(w, r, http.StatusNotFound, CodeSongNotFound, err.Error(), nil, map[string]interface{}{
			"song": itemErr.Name,
		})
	case errors.As(err, &userErr):
		respondError(w, r, http.StatusNotFound, CodeUserNotFound, err.Error(), nil, map[string]interface{}{
			"user": userErr.User,
		})
	case errors.As(err, &schemaErr):
		respondError(w, r, http.StatusServiceUnavailable, CodeSchemaError, "Dataset is missing required columns", err, map[string]interface{}{
			"missing":  schemaErr.Missing,
			"expected": schemaErr.Expected,
			"found":    schemaErr.Found,
		})
	case errors.Is(err, recommend.ErrEmptyDataset):
		respondError(w, r, http.StatusServiceUnavailable, CodeDatasetEmpty, "Dataset has no rows", err, nil)
	case errors.Is(err, library.ErrCatalogNotConfigured), errors.Is(err, library.ErrHistoryNotConfigured):
		respondError(w, r, http.StatusServiceUnavailable, CodeNotConfigured, err.Error(), nil, nil)
	default:
		respondError(w, r, http.StatusInternalServerError, CodeInternalError, "Failed to load dataset", err, nil)
	}
}
