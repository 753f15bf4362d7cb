// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader kinds accepted by NewReader.
const (
	ReaderCSV    = "csv"
	ReaderDuckDB = "duckdb"
)

// Reader loads a dataset file into a Table.
type Reader interface {
	Read(ctx context.Context, path string) (*Table, error)
}

// NewReader returns the reader for kind ("csv" or "duckdb").
func NewReader(kind string) (Reader, error) {
	switch strings.ToLower(kind) {
	case ReaderCSV, "":
		return CSVReader{}, nil
	case ReaderDuckDB:
		return DuckDBReader{}, nil
	default:
		return nil, fmt.Errorf("unknown dataset reader %q", kind)
	}
}

// CSVReader reads comma separated files with a header row.
// Rows may have fewer or more cells than the header.
type CSVReader struct{}

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 1024

// Read implements Reader.
func (CSVReader) Read(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return readCSV(ctx, f)
}

func readCSV(ctx context.Context, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Header: header}
	for {
		if len(t.Rows)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		if isBlankRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
