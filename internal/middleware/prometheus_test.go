// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/soundalike/internal/metrics"
)

func TestPrometheusMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/songs/{name}/similar", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/songs/{name}/similar", "404")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/songs/Yellow/similar", "/songs/Clocks/similar"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: status = %d", path, rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("requests counted under the route pattern = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != 0 {
		t.Errorf("active requests = %v after completion, want 0", got)
	}
}

func TestPrometheusMetricsUnmatched(t *testing.T) {
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "200")
	before := testutil.ToFloat64(counter)

	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/anything", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched requests = %v, want 1", got)
	}
}

func TestMetricsResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &metricsResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	w.WriteHeader(http.StatusServiceUnavailable)
	w.WriteHeader(http.StatusOK)

	if w.statusCode != http.StatusServiceUnavailable {
		t.Errorf("statusCode = %d, want first status", w.statusCode)
	}
	if w.Unwrap() != rec {
		t.Error("Unwrap() did not return the wrapped writer")
	}
}
