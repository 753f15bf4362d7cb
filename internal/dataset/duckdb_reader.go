// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
)

// DuckDBReader reads any file DuckDB's read_csv_auto understands (delimiter
// and quoting are sniffed) through an in-memory DuckDB database.
// Values are read as text; NULL becomes "".
type DuckDBReader struct{}

// Read implements Reader.
func (DuckDBReader) Read(ctx context.Context, path string) (*Table, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, readCSVQuery(path))
	if err != nil {
		return nil, fmt.Errorf("read_csv_auto %s: %w", path, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	t := &Table{Header: header}
	values := make([]interface{}, len(header))
	ptrs := make([]interface{}, len(header))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(t.Rows)+1, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = cellString(v)
		}
		if !isBlankRow(row) {
			t.Rows = append(t.Rows, row)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return t, nil
}

// readCSVQuery builds the query for path. Table functions do not accept
// bound parameters, so the path is embedded as an escaped string literal.
func readCSVQuery(path string) string {
	literal := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	return "SELECT * FROM read_csv_auto(" + literal + ", header = true, all_varchar = true)"
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
