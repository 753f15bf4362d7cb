// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

// Package dataset loads tabular song data and turns it into the inputs of
// the recommend package.
//
// Loading is split into small steps that run once per dataset version:
//
//	table, err := dataset.NewReader("csv").Read(ctx, path)   // rows of strings
//	schema, err := dataset.ResolveSchema(table.Header, aliases, dataset.FieldSong)
//	tags, err := dataset.BuildTags(table, schema, []string{"artist", "genre"})
//	items, err := dataset.Items(table, schema, fields)      // []recommend.Item
//
// Header matching is a single declarative step ([ResolveSchema]): headers
// are normalized and looked up in an alias table, and a [*MissingFieldError]
// lists what was expected and what was found when a field cannot be
// resolved.
package dataset

import (
	"fmt"
	"os"
	"time"
)

// Table is a rectangular dataset of string cells with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the value at row, col, or "" when the row is shorter than the header.
func (t *Table) Cell(row, col int) string {
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Fingerprint identifies one version of a dataset file.
type Fingerprint struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
	Size    int64     `json:"size"`
}

// String returns a key that changes whenever the file is rewritten.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%s|%d|%d", f.Path, f.ModTime.UnixNano(), f.Size)
}

// Stat fingerprints the file at path.
func Stat(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("stat dataset: %w", err)
	}
	if info.IsDir() {
		return Fingerprint{}, fmt.Errorf("dataset %s is a directory", path)
	}
	return Fingerprint{Path: path, ModTime: info.ModTime(), Size: info.Size()}, nil
}
