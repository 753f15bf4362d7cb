// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

// Package library is the entry point callers use to query the recommender.
//
// A Library owns two lazily built snapshots: the content model (vectorizer,
// similarity matrix and catalog statistics) built from the song catalog, and
// the play matrix built from the listening history file. Each snapshot is
// keyed by its file's fingerprint, so a modified file is reloaded on the next
// query. Query results are kept in an LRU that is cleared whenever a model is
// rebuilt.
//
// The HTTP API, the CLI and the supervisor services are thin callers of this
// package.
package library

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/soundalike/internal/cache"
	"github.com/tomtom215/soundalike/internal/config"
	"github.com/tomtom215/soundalike/internal/dataset"
	"github.com/tomtom215/soundalike/internal/metrics"
	"github.com/tomtom215/soundalike/internal/recommend"
)

// Model names used for snapshots, metrics and logs.
const (
	ModelContent = "content"
	ModelHistory = "history"
)

var (
	// ErrCatalogNotConfigured is returned by catalog queries when no catalog path is set.
	ErrCatalogNotConfigured = errors.New("song catalog not configured")

	// ErrHistoryNotConfigured is returned by history queries when no history path is set.
	ErrHistoryNotConfigured = errors.New("listening history not configured")
)

// Options configures a Library.
type Options struct {
	// Catalog describes the song catalog. An empty Path disables content queries.
	Catalog dataset.CatalogSource

	// MaxVocabulary bounds the vectorizer vocabulary; 0 uses the default.
	MaxVocabulary int

	// HistoryPath is the play matrix file. Empty disables history queries.
	HistoryPath   string
	HistoryReader dataset.Reader

	// DefaultK replaces k <= 0; MaxK caps larger requests. Zero values use
	// recommend.DefaultK and no cap.
	DefaultK int
	MaxK     int

	// ResultCacheSize is the LRU capacity for query results; 0 disables it.
	ResultCacheSize int
	ResultCacheTTL  time.Duration

	Logger zerolog.Logger
}

// Library answers catalog and history queries over cached models.
type Library struct {
	opts   Options
	logger zerolog.Logger

	catalog *cache.Snapshot[*catalogModel]
	history *cache.Snapshot[*historyModel]
	results *cache.LRU[any]
}

// Status describes the loaded models and the result cache.
type Status struct {
	Catalog     *cache.SnapshotInfo `json:"catalog,omitempty"`
	History     *cache.SnapshotInfo `json:"history,omitempty"`
	ResultCache *cache.LRUStats     `json:"result_cache,omitempty"`
}

// New creates a Library. Nothing is loaded until the first query or Warm.
func New(opts Options) *Library {
	if opts.Catalog.Reader == nil {
		opts.Catalog.Reader = dataset.CSVReader{}
	}
	if opts.HistoryReader == nil {
		opts.HistoryReader = dataset.CSVReader{}
	}
	if opts.DefaultK <= 0 {
		opts.DefaultK = recommend.DefaultK
	}
	if opts.Catalog.Aliases == nil {
		opts.Catalog.Aliases = dataset.DefaultAliases()
	}

	l := &Library{
		opts:   opts,
		logger: opts.Logger.With().Str("component", "library").Logger(),
	}
	if opts.Catalog.Path != "" {
		l.catalog = cache.NewSnapshot(ModelContent, fileFingerprint(opts.Catalog.Path), l.buildCatalog)
	}
	if opts.HistoryPath != "" {
		l.history = cache.NewSnapshot(ModelHistory, fileFingerprint(opts.HistoryPath), l.buildHistory)
	}
	if opts.ResultCacheSize > 0 {
		l.results = cache.NewLRU[any](opts.ResultCacheSize, opts.ResultCacheTTL)
	}
	return l
}

// NewFromConfig creates a Library from the application configuration.
func NewFromConfig(cfg *config.Config, logger zerolog.Logger) (*Library, error) {
	catalogReader, err := dataset.NewReader(cfg.Dataset.Reader)
	if err != nil {
		return nil, fmt.Errorf("dataset reader: %w", err)
	}
	historyReader, err := dataset.NewReader(cfg.History.Reader)
	if err != nil {
		return nil, fmt.Errorf("history reader: %w", err)
	}

	return New(Options{
		Catalog: dataset.CatalogSource{
			Path:          cfg.Dataset.Path,
			Reader:        catalogReader,
			Aliases:       dataset.DefaultAliases().Merge(cfg.Dataset.Aliases),
			FeatureFields: cfg.Dataset.FeatureFields,
		},
		MaxVocabulary:   cfg.Dataset.MaxVocabulary,
		HistoryPath:     cfg.History.Path,
		HistoryReader:   historyReader,
		DefaultK:        cfg.Recommend.DefaultK,
		MaxK:            cfg.Recommend.MaxK,
		ResultCacheSize: cfg.Cache.ResultCacheSize,
		ResultCacheTTL:  cfg.Cache.ResultCacheTTL,
		Logger:          logger,
	}), nil
}

func fileFingerprint(path string) cache.FingerprintFunc {
	return func(context.Context) (string, error) {
		fp, err := dataset.Stat(path)
		if err != nil {
			return "", err
		}
		return fp.String(), nil
	}
}

// Paths returns the configured dataset files.
func (l *Library) Paths() []string {
	var paths []string
	if l.catalog != nil {
		paths = append(paths, l.opts.Catalog.Path)
	}
	if l.history != nil {
		paths = append(paths, l.opts.HistoryPath)
	}
	return paths
}

// Warm builds every configured model. Errors from each model are joined.
func (l *Library) Warm(ctx context.Context) error {
	var errs []error
	if l.catalog != nil {
		if _, _, err := l.catalog.Get(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if l.history != nil {
		if _, _, err := l.history.Get(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Invalidate drops every model and cached result. The next query reloads.
func (l *Library) Invalidate() {
	l.invalidate("manual", l.catalog != nil, l.history != nil)
}

// Refresh invalidates every model and rebuilds immediately.
func (l *Library) Refresh(ctx context.Context) (*Status, error) {
	l.invalidate("refresh", l.catalog != nil, l.history != nil)
	if err := l.Warm(ctx); err != nil {
		return l.Status(), err
	}
	return l.Status(), nil
}

// Changed invalidates the model loaded from path, if any, and reports
// whether one matched. trigger labels the invalidation metric.
func (l *Library) Changed(path, trigger string) bool {
	path = filepath.Clean(path)
	catalog := l.catalog != nil && filepath.Clean(l.opts.Catalog.Path) == path
	history := l.history != nil && filepath.Clean(l.opts.HistoryPath) == path
	if !catalog && !history {
		return false
	}
	l.invalidate(trigger, catalog, history)
	return true
}

// Stale reports whether any configured model needs a build: it is not
// loaded (never built, invalidated or its last build failed) or its file
// changed since it was built.
func (l *Library) Stale(ctx context.Context) bool {
	stale := func(info cache.SnapshotInfo, fp cache.FingerprintFunc) bool {
		if !info.Ready {
			return true
		}
		current, err := fp(ctx)
		return err != nil || current != info.Fingerprint
	}
	if l.catalog != nil && stale(l.catalog.Info(), fileFingerprint(l.opts.Catalog.Path)) {
		return true
	}
	return l.history != nil && stale(l.history.Info(), fileFingerprint(l.opts.HistoryPath))
}

func (l *Library) invalidate(trigger string, catalog, history bool) {
	if catalog {
		l.catalog.Invalidate()
	}
	if history {
		l.history.Invalidate()
	}
	l.clearResults()
	metrics.CacheInvalidations.WithLabelValues(trigger).Inc()
	l.logger.Debug().
		Str("trigger", trigger).
		Bool("catalog", catalog).
		Bool("history", history).
		Msg("Models invalidated")
}

func (l *Library) clearResults() {
	if l.results == nil {
		return
	}
	l.results.Clear()
	metrics.CacheSize.WithLabelValues("result").Set(0)
}

// Ready reports whether every configured model is loaded.
func (l *Library) Ready() bool {
	if l.catalog == nil && l.history == nil {
		return false
	}
	if l.catalog != nil && !l.catalog.Info().Ready {
		return false
	}
	return l.history == nil || l.history.Info().Ready
}

// Status reports the state of the models and the result cache.
func (l *Library) Status() *Status {
	s := &Status{}
	if l.catalog != nil {
		info := l.catalog.Info()
		s.Catalog = &info
	}
	if l.history != nil {
		info := l.history.Info()
		s.History = &info
	}
	if l.results != nil {
		stats := l.results.Stats()
		s.ResultCache = &stats
	}
	return s
}
