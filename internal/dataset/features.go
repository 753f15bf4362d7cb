// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/soundalike/internal/recommend"
)

// DefaultFeatureFields are the columns a song's tag is built from.
var DefaultFeatureFields = []string{FieldArtist, FieldGenre}

// BuildTags joins the selected fields of every row with a single space.
// Returns a *MissingFieldError if a field is not in the schema.
func BuildTags(t *Table, s *Schema, fields []string) ([]string, error) {
	cols, err := featureColumns(t, s, fields)
	if err != nil {
		return nil, err
	}

	tags := make([]string, t.Len())
	parts := make([]string, len(cols))
	for row := range t.Rows {
		for i, col := range cols {
			parts[i] = t.Cell(row, col)
		}
		tags[row] = strings.Join(parts, " ")
	}
	return tags, nil
}

func featureColumns(t *Table, s *Schema, fields []string) ([]int, error) {
	if len(fields) == 0 {
		fields = DefaultFeatureFields
	}
	cols := make([]int, 0, len(fields))
	var missing []string
	for _, field := range fields {
		field = normalizeHeader(field)
		col, ok := s.Column(field)
		if !ok {
			missing = append(missing, field)
			continue
		}
		cols = append(cols, col)
	}
	if len(missing) > 0 {
		return nil, &MissingFieldError{Missing: missing, Found: t.Header}
	}
	return cols, nil
}

// Items converts a song table into catalog items. The schema must have a
// song column; artist, genre and popularity are read when present.
func Items(t *Table, s *Schema, fields []string) ([]recommend.Item, error) {
	if t.Len() == 0 {
		return nil, recommend.ErrEmptyDataset
	}
	songCol, ok := s.Column(FieldSong)
	if !ok {
		return nil, &MissingFieldError{Missing: []string{FieldSong}, Found: t.Header}
	}

	tags, err := BuildTags(t, s, fields)
	if err != nil {
		return nil, err
	}

	artistCol, hasArtist := s.Column(FieldArtist)
	genreCol, hasGenre := s.Column(FieldGenre)
	popCol, hasPop := s.Column(FieldPopularity)

	items := make([]recommend.Item, t.Len())
	for row := range t.Rows {
		item := recommend.Item{
			ID:   row,
			Name: strings.TrimSpace(t.Cell(row, songCol)),
			Tag:  tags[row],
		}
		if hasArtist {
			item.Artist = strings.TrimSpace(t.Cell(row, artistCol))
		}
		if hasGenre {
			item.Genre = strings.TrimSpace(t.Cell(row, genreCol))
		}
		if hasPop {
			if v, err := strconv.ParseFloat(strings.TrimSpace(t.Cell(row, popCol)), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
				item.Popularity = v
				item.HasPopularity = true
			}
		}
		items[row] = item
	}
	return items, nil
}

// PlayMatrix converts a history table into a play matrix. The first column
// holds user ids and every other column is a song with play counts.
func PlayMatrix(t *Table) (*recommend.PlayMatrix, error) {
	if len(t.Header) < 2 {
		return nil, &MissingFieldError{
			Missing: []string{"user column and at least one song column"},
			Found:   t.Header,
		}
	}
	if t.Len() == 0 {
		return nil, recommend.ErrEmptyDataset
	}

	songs := make([]string, len(t.Header)-1)
	for i, h := range t.Header[1:] {
		songs[i] = strings.TrimSpace(h)
	}

	users := make([]string, t.Len())
	counts := make([][]int, t.Len())
	for row := range t.Rows {
		users[row] = strings.TrimSpace(t.Cell(row, 0))
		counts[row] = make([]int, len(songs))
		for s := range songs {
			counts[row][s] = ParseCount(t.Cell(row, s+1))
		}
	}
	return recommend.NewPlayMatrix(songs, users, counts)
}

// maxPlayCount bounds a single play count cell. Larger values, written as
// integers or as floats, are treated as invalid.
const maxPlayCount = math.MaxInt32

// ParseCount converts a play count cell to an integer. Empty, non-numeric,
// negative, non-finite and out of range values are 0; fractional values are
// truncated.
func ParseCount(cell string) int {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	if n, err := strconv.Atoi(cell); err == nil {
		if n < 0 || n > maxPlayCount {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > maxPlayCount {
		return 0
	}
	return int(f)
}
