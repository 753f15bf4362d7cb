// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/soundalike/internal/library"
	"github.com/tomtom215/soundalike/internal/logging"
	"github.com/tomtom215/soundalike/internal/models"
	"github.com/tomtom215/soundalike/internal/recommend"
	"github.com/tomtom215/soundalike/internal/validation"
)

// Library is the query surface the handlers need.
type Library interface {
	Recommend(ctx context.Context, name string, k int) ([]recommend.Recommendation, error)
	Song(ctx context.Context, name string) (recommend.Item, error)
	Songs(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*library.CatalogSummary, error)
	TopArtists(ctx context.Context, n int) ([]recommend.ArtistCount, error)
	TopSongs(ctx context.Context, n int) ([]recommend.Item, error)
	TopPlayed(ctx context.Context, user string, k int) ([]recommend.PlayCount, error)
	ListeningSummary(ctx context.Context, user string, k int) (*recommend.ListeningSummary, error)
	Refresh(ctx context.Context) (*library.Status, error)
	Ready() bool
	Status() *library.Status
}

// Handler serves the API endpoints.
type Handler struct {
	lib            Library
	maxK           int
	refreshTimeout time.Duration
	startTime      time.Time
}

// NewHandler creates a handler over lib. maxK bounds the k and n query
// parameters; 0 leaves them unbounded.
func NewHandler(lib Library, maxK int) *Handler {
	return &Handler{lib: lib, maxK: maxK, startTime: time.Now()}
}

// SetRefreshTimeout sets the write deadline of the refresh endpoint,
// overriding the server's WriteTimeout for that request. 0 keeps it.
func (h *Handler) SetRefreshTimeout(d time.Duration) {
	h.refreshTimeout = d
}

// countRequest holds the k or n query parameter.
type countRequest struct {
	Count int `validate:"gte=0,lte=10000"`
}

// parseCount reads key and checks 0 <= value <= maxK. It writes the error
// response and returns false when the value is invalid.
func (h *Handler) parseCount(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	n, apiErr := intParam(r, key)
	if apiErr == nil {
		apiErr = validateRequest(&countRequest{Count: n})
	}
	if apiErr == nil && h.maxK > 0 && n > h.maxK {
		apiErr = &models.APIError{
			Code:    validation.CodeValidationError,
			Message: key + " exceeds the maximum",
			Details: map[string]interface{}{"field": key, "max": h.maxK},
		}
	}
	if apiErr != nil {
		if apiErr.Details == nil {
			apiErr.Details = map[string]interface{}{}
		}
		apiErr.Details["field"] = key
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil, apiErr.Details)
		return 0, false
	}
	return n, true
}

// SimilarSongs handles GET /api/v1/songs/{name}/similar?k=.
func (h *Handler) SimilarSongs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := pathParam(r, "name")
	k, ok := h.parseCount(w, r, "k")
	if !ok {
		return
	}

	results, err := h.lib.Recommend(r.Context(), name, k)
	if err != nil {
		respondLibraryError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Debug().
		Str("song", sanitizeLogValue(name)).
		Int("results", len(results)).
		Msg("Similar songs served")

	respondSuccess(w, r, models.SimilarSongsResponse{Song: name, K: len(results), Results: results}, start)
}

// Song handles GET /api/v1/songs/{name}.
func (h *Handler) Song(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	item, err := h.lib.Song(r.Context(), pathParam(r, "name"))
	if err != nil {
		respondLibraryError(w, r, err)
		return
	}
	respondSuccess(w, r, item, start)
}

// Songs handles GET /api/v1/songs.
func (h *Handler) Songs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	names, err := h.lib.Songs(r.Context())
	if err != nil {
		respondLibraryError(w, r, err)
		return
	}
	respondSuccess(w, r, models.SongListResponse{Total: len(names), Songs: names}, start)
}

// TopPlayed handles GET /api/v1/users/{userID}/top?k=.
func (h *Handler) TopPlayed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	user := pathParam(r, "userID")
	k, ok := h.parseCount(w, r, "k")
	if !ok {
		return
	}

	results, err := h.lib.TopPlayed(r.Context(), user, k)
	if err != nil {
		respondLibraryError(w, r, err)
		return
	}
	respondSuccess(w, r, models.TopPlayedResponse{User: user, K: len(results), Results: results}, start)
}

// ListeningSummary handles GET /api/v1/users/{userID}/summary?k=.
func (h *Handler) ListeningSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	k, ok := h.parseCount(w, r, "k")
	if !ok {
		return
	}

	summary, err := h.lib.ListeningSummary(r.Context(), pathParam(r, "userID"), k)
	if err != nil {
		respondLibraryError(w, r, err)
		return
	}
	respondSuccess(w, r, summary, start)
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := h.lib.Stats(r.Context())
	if err != nil {
		respondLibraryError(w, r, err)
		return
	}
	respondSuccess(w, r, stats, start)
}

// TopArtists handles GET /api/v1/stats/top-artists?n=.
func (h *Handler) TopArtists(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, ok := h.parseCount(w, r, "n")
	if !ok {
		return
	}

	artists, err := h.lib.TopArtists(r.Context(), n)
	if err != nil {
		respondLibraryError(w, r, err)
		return
	}
	respondSuccess(w, r, artists, start)
}

// TopSongs handles GET /api/v1/stats/top-songs?n=.
func (h *Handler) TopSongs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, ok := h.parseCount(w, r, "n")
	if !ok {
		return
	}

	songs, err := h.lib.TopSongs(r.Context(), n)
	if err != nil {
		respondLibraryError(w, r, err)
		return
	}
	respondSuccess(w, r, songs, start)
}

// Refresh handles POST /api/v1/refresh. Models are rebuilt before the
// response is written.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.refreshTimeout > 0 {
		rc := http.NewResponseController(w)
		if err := rc.SetWriteDeadline(start.Add(h.refreshTimeout)); err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Refresh keeps the server write deadline")
		}
	}
	status, err := h.lib.Refresh(r.Context())
	if err != nil {
		respondLibraryError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().
		Dur("duration", time.Since(start)).
		Msg("Datasets refreshed")
	respondSuccess(w, r, status, start)
}
