// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package dataset

import (
	"context"
	"fmt"

	"github.com/tomtom215/soundalike/internal/recommend"
)

// ErrEmptyDataset is returned when a file has a header but no rows.
var ErrEmptyDataset = recommend.ErrEmptyDataset

// CatalogSource describes where and how to read the song catalog.
type CatalogSource struct {
	Path          string
	Reader        Reader
	Aliases       Aliases
	FeatureFields []string
}

// LoadCatalog reads the catalog file and converts it to items.
func LoadCatalog(ctx context.Context, src CatalogSource) ([]recommend.Item, error) {
	t, err := src.Reader.Read(ctx, src.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", src.Path, err)
	}
	if len(t.Header) == 0 {
		return nil, fmt.Errorf("load catalog %s: %w", src.Path, ErrEmptyDataset)
	}

	fields := src.FeatureFields
	if len(fields) == 0 {
		fields = DefaultFeatureFields
	}
	required := append([]string{FieldSong}, fields...)

	schema, err := ResolveSchema(t.Header, src.Aliases, required...)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", src.Path, err)
	}
	items, err := Items(t, schema, fields)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", src.Path, err)
	}
	return items, nil
}

// LoadPlayMatrix reads a listening history file into a play matrix.
func LoadPlayMatrix(ctx context.Context, r Reader, path string) (*recommend.PlayMatrix, error) {
	t, err := r.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", path, err)
	}
	if len(t.Header) == 0 {
		return nil, fmt.Errorf("load history %s: %w", path, ErrEmptyDataset)
	}
	m, err := PlayMatrix(t)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", path, err)
	}
	return m, nil
}
