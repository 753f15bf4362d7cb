// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

// Package metrics defines the Prometheus instrumentation for Soundalike:
// model builds, query outcomes, caches, dataset watching and the HTTP API.
// Metrics register with the default registry and are served on /metrics.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Model Build Metrics
	ModelBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soundalike_model_build_duration_seconds",
			Help:    "Duration of dataset load and model build in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"model"}, // "content", "history"
	)

	ModelBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_model_builds_total",
			Help: "Total number of model builds by outcome",
		},
		[]string{"model", "outcome"}, // outcome: "success", "schema_error", "empty", "error"
	)

	ModelItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "soundalike_model_items",
			Help: "Number of songs (or play matrix columns) in the current model",
		},
		[]string{"model"},
	)

	ModelVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "soundalike_model_vocabulary_size",
			Help: "Number of tokens in the content model vocabulary",
		},
	)

	ModelLastBuild = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "soundalike_model_last_build_timestamp_seconds",
			Help: "Unix timestamp of the last successful model build",
		},
		[]string{"model"},
	)

	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_queries_total",
			Help: "Total number of library queries by kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: "ok", "not_found", "error"
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soundalike_query_duration_seconds",
			Help:    "Library query duration in seconds (excluding model builds)",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"kind"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "snapshot", "result"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "soundalike_cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_cache_invalidations_total",
			Help: "Total number of cache invalidations by trigger",
		},
		[]string{"trigger"}, // "refresh", "watch", "poll"
	)

	// Dataset Watcher Metrics
	WatchEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_watch_events_total",
			Help: "Dataset file events seen by the watcher",
		},
		[]string{"action"}, // "invalidated", "coalesced"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soundalike_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soundalike_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "soundalike_api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// Build outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeSchemaError = "schema_error"
	OutcomeEmpty       = "empty"
	OutcomeError       = "error"
)

// RecordModelBuild records a model build. classify maps the build error to
// an outcome label; it is only called when err is non-nil.
func RecordModelBuild(model string, duration time.Duration, items int, err error, classify func(error) string) {
	ModelBuildDuration.WithLabelValues(model).Observe(duration.Seconds())
	if err != nil {
		outcome := OutcomeError
		if classify != nil {
			outcome = classify(err)
		}
		ModelBuildsTotal.WithLabelValues(model, outcome).Inc()
		return
	}
	ModelBuildsTotal.WithLabelValues(model, OutcomeSuccess).Inc()
	ModelItems.WithLabelValues(model).Set(float64(items))
	ModelLastBuild.WithLabelValues(model).SetToCurrentTime()
}

// RecordQuery records a library query. notFound is the sentinel that marks
// a lookup miss for this kind of query.
func RecordQuery(kind string, duration time.Duration, err error, notFound ...error) {
	QueryDuration.WithLabelValues(kind).Observe(duration.Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
		for _, target := range notFound {
			if errors.Is(err, target) {
				outcome = "not_found"
				break
			}
		}
	}
	QueriesTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordCacheLookup records a hit or miss for the given cache.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
