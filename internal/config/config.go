// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

// Package config loads Soundalike configuration.
//
// Configuration is layered with koanf: struct defaults, then an optional
// YAML file, then environment variables (highest priority). See [Load].
//
// Example config.yaml:
//
//	dataset:
//	  path: data/songs.csv
//	  reader: duckdb
//	  feature_fields: [artist, genre]
//	  aliases:
//	    song: [track_title]
//	history:
//	  path: data/plays.csv
//	server:
//	  port: 8080
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	History   HistoryConfig   `koanf:"history"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig describes the song catalog used for content similarity.
type DatasetConfig struct {
	// Path is the catalog file. Empty disables content recommendations.
	Path string `koanf:"path"`

	// Reader selects the loader: "csv" (encoding/csv) or "duckdb" (read_csv_auto).
	Reader string `koanf:"reader" validate:"oneof=csv duckdb"`

	// FeatureFields are the canonical columns joined into each song's tag.
	FeatureFields []string `koanf:"feature_fields" validate:"min=1,dive,canonical_field"`

	// Aliases adds header names per canonical field, merged over the built-in table.
	Aliases map[string][]string `koanf:"aliases" validate:"omitempty,dive,keys,canonical_field,endkeys,min=1"`

	// MaxVocabulary bounds the token vocabulary; 0 uses the default of 5000.
	MaxVocabulary int `koanf:"max_vocabulary" validate:"gte=0"`
}

// HistoryConfig describes the user x song play-count matrix.
type HistoryConfig struct {
	// Path is the play matrix file. Empty disables history rankings.
	Path   string `koanf:"path"`
	Reader string `koanf:"reader" validate:"oneof=csv duckdb"`
}

// RecommendConfig holds query defaults and bounds for k.
type RecommendConfig struct {
	DefaultK int `koanf:"default_k" validate:"min=1"`
	MaxK     int `koanf:"max_k" validate:"min=1"`
}

// CacheConfig controls model rebuilds and the query result cache.
type CacheConfig struct {
	// Watch enables the fsnotify watcher that invalidates on dataset writes.
	Watch bool `koanf:"watch"`

	// WatchDebounce is the minimum spacing between watcher-triggered rebuilds.
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// PollInterval re-checks dataset fingerprints periodically; 0 disables polling.
	PollInterval time.Duration `koanf:"poll_interval"`

	// ResultCacheSize is the LRU capacity for query results; 0 disables it.
	ResultCacheSize int           `koanf:"result_cache_size" validate:"gte=0"`
	ResultCacheTTL  time.Duration `koanf:"result_cache_ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitEnabled  bool          `koanf:"rate_limit_enabled"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// RefreshTimeout replaces Timeout as the write deadline of POST /refresh,
	// which rebuilds every model before it responds. 0 keeps Timeout.
	RefreshTimeout time.Duration `koanf:"refresh_timeout"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
