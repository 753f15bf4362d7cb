// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/soundalike/internal/metrics"
)

// WarmupService builds every model when it starts and, with a poll
// interval, rebuilds models whose files changed or whose last build failed.
//
// A failed build is logged, not returned: the API reports the error to
// callers and the next poll or query retries.
type WarmupService struct {
	datasets     Datasets
	pollInterval time.Duration
	logger       zerolog.Logger
	name         string
}

// NewWarmupService creates the service. pollInterval <= 0 disables polling.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWarmupService(datasets Datasets, pollInterval time.Duration, logger zerolog.Logger) *WarmupService {
	return &WarmupService{
		datasets:     datasets,
		pollInterval: pollInterval,
		logger:       logger.With().Str("service", "warmup").Logger(),
		name:         "dataset-warmup",
	}
}

// Serve implements suture.Service.
func (s *WarmupService) Serve(ctx context.Context) error {
	s.logger.Info().
		Strs("paths", s.datasets.Paths()).
		Dur("poll_interval", s.pollInterval).
		Msg("Warming dataset models")

	start := time.Now()
	if err := s.datasets.Warm(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Initial model build failed")
	} else {
		s.logger.Info().Dur("duration", time.Since(start)).Msg("Dataset models ready")
	}

	if s.pollInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *WarmupService) poll(ctx context.Context) {
	if !s.datasets.Stale(ctx) {
		return
	}
	metrics.CacheInvalidations.WithLabelValues("poll").Inc()
	s.logger.Info().Bool("ready", s.datasets.Ready()).Msg("Dataset changed or not loaded, rebuilding")
	if err := s.datasets.Warm(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Model rebuild failed")
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *WarmupService) String() string {
	return s.name
}
