// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/soundalike/internal/metrics"
)

// WatcherService invalidates and rebuilds models when their dataset files
// are written, replaced or removed.
//
// The parent directories are watched rather than the files, so editors and
// tools that replace a file by renaming a temporary over it are seen.
// Rebuilds are spaced at least debounce apart by a rate.Limiter; events
// arriving while a rebuild is scheduled are folded into it.
type WatcherService struct {
	datasets Datasets
	debounce time.Duration
	logger   zerolog.Logger
	name     string
}

// NewWatcherService creates the service. debounce <= 0 rebuilds on every event.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWatcherService(datasets Datasets, debounce time.Duration, logger zerolog.Logger) *WatcherService {
	return &WatcherService{
		datasets: datasets,
		debounce: debounce,
		logger:   logger.With().Str("service", "watcher").Logger(),
		name:     "dataset-watcher",
	}
}

// Serve implements suture.Service.
func (s *WatcherService) Serve(ctx context.Context) error {
	targets, err := watchTargets(s.datasets.Paths())
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dirs := make(map[string]bool)
	for path := range targets {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	s.logger.Info().Int("files", len(targets)).Dur("debounce", s.debounce).Msg("Watching dataset files")

	limit := rate.Inf
	if s.debounce > 0 {
		limit = rate.Every(s.debounce)
	}
	limiter := rate.NewLimiter(limit, 1)

	pending := make(map[string]bool)
	var fire <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			path, relevant := matchEvent(event, targets)
			if !relevant {
				continue
			}
			pending[path] = true
			if fire != nil {
				metrics.WatchEvents.WithLabelValues("coalesced").Inc()
				continue
			}
			timer = time.NewTimer(limiter.Reserve().Delay())
			fire = timer.C

		case <-fire:
			fire = nil
			s.rebuild(ctx, pending)
			pending = make(map[string]bool)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			s.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (s *WatcherService) rebuild(ctx context.Context, paths map[string]bool) {
	invalidated := 0
	for path := range paths {
		if s.datasets.Changed(path, "watch") {
			invalidated++
			metrics.WatchEvents.WithLabelValues("invalidated").Inc()
			s.logger.Info().Str("path", path).Msg("Dataset file changed")
		}
	}
	if invalidated == 0 {
		return
	}
	if err := s.datasets.Warm(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Model rebuild after file change failed")
	}
}

// watchTargets maps each dataset file's absolute path to the path the
// library knows it by.
func watchTargets(paths []string) (map[string]string, error) {
	targets := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = p
	}
	return targets, nil
}

// matchEvent returns the library path of a dataset file touched by event.
// Chmod-only events are ignored.
func matchEvent(event fsnotify.Event, targets map[string]string) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	path, ok := targets[abs]
	return path, ok
}

// String implements fmt.Stringer for suture's logs.
func (s *WatcherService) String() string {
	return s.name
}
