// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/soundalike/internal/models"
)

// HealthLive handles liveness check requests.
// Returns 200 OK if the process is alive, regardless of dataset state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status: "alive",
			Ready:  h.lib.Ready(),
			Uptime: time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles readiness check requests.
// Returns 200 once every configured dataset is loaded, 503 before that or
// after a failed reload.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.lib.Ready()
	health := models.HealthStatus{
		Status: "ready",
		Ready:  ready,
		Uptime: time.Since(h.startTime).Seconds(),
		Models: h.lib.Status(),
	}

	status := http.StatusOK
	responseStatus := "success"
	if !ready {
		health.Status = "not_ready"
		status = http.StatusServiceUnavailable
		responseStatus = "error"
	}

	// Readiness must never be served from a cache.
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, nil, status, &models.APIResponse{
		Status:   responseStatus,
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
