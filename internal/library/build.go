// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package library

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/soundalike/internal/dataset"
	"github.com/tomtom215/soundalike/internal/metrics"
	"github.com/tomtom215/soundalike/internal/recommend"
)

// catalogModel is one build of the song catalog. id prefixes result cache
// keys so results computed from an older build never answer for a newer one.
type catalogModel struct {
	id    string
	model *recommend.ContentModel
	stats *recommend.CatalogStats
}

type historyModel struct {
	id     string
	matrix *recommend.PlayMatrix
}

func (l *Library) buildCatalog(ctx context.Context) (*catalogModel, error) {
	start := time.Now()
	log := l.logger.With().Str("model", ModelContent).Str("path", l.opts.Catalog.Path).Logger()
	log.Info().Msg("Building content model")

	items, err := dataset.LoadCatalog(ctx, l.opts.Catalog)
	if err == nil && len(items) == 0 {
		err = recommend.ErrEmptyDataset
	}
	var model *recommend.ContentModel
	if err == nil {
		model, err = recommend.NewContentModel(items, l.opts.MaxVocabulary)
	}
	duration := time.Since(start)
	metrics.RecordModelBuild(ModelContent, duration, len(items), err, classifyBuildError)
	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("Content model build failed")
		return nil, err
	}

	vocab := model.Vocabulary().Len()
	metrics.ModelVocabularySize.Set(float64(vocab))
	l.clearResults()
	log.Info().
		Int("songs", model.Len()).
		Int("vocabulary", vocab).
		Dur("duration", duration).
		Msg("Content model built")

	return &catalogModel{
		id:    uuid.NewString(),
		model: model,
		stats: recommend.NewCatalogStats(model.Items()),
	}, nil
}

func (l *Library) buildHistory(ctx context.Context) (*historyModel, error) {
	start := time.Now()
	log := l.logger.With().Str("model", ModelHistory).Str("path", l.opts.HistoryPath).Logger()
	log.Info().Msg("Loading listening history")

	matrix, err := dataset.LoadPlayMatrix(ctx, l.opts.HistoryReader, l.opts.HistoryPath)
	duration := time.Since(start)
	users := 0
	if err == nil {
		users = len(matrix.Users())
	}
	metrics.RecordModelBuild(ModelHistory, duration, users, err, classifyBuildError)
	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("Listening history load failed")
		return nil, err
	}

	l.clearResults()
	log.Info().
		Int("users", users).
		Int("songs", len(matrix.Songs())).
		Dur("duration", duration).
		Msg("Listening history loaded")

	return &historyModel{id: uuid.NewString(), matrix: matrix}, nil
}

func classifyBuildError(err error) string {
	switch {
	case errors.Is(err, dataset.ErrMissingField):
		return metrics.OutcomeSchemaError
	case errors.Is(err, recommend.ErrEmptyDataset):
		return metrics.OutcomeEmpty
	default:
		return metrics.OutcomeError
	}
}
