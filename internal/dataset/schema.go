// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Canonical field names a header can resolve to.
const (
	FieldSong       = "song"
	FieldArtist     = "artist"
	FieldGenre      = "genre"
	FieldPopularity = "popularity"
	FieldUser       = "user"
)

// canonicalOrder fixes the order fields claim columns in.
var canonicalOrder = []string{FieldSong, FieldArtist, FieldGenre, FieldPopularity, FieldUser}

// ErrMissingField matches *MissingFieldError.
var ErrMissingField = errors.New("required dataset field missing")

// MissingFieldError reports canonical fields that no header resolved to.
type MissingFieldError struct {
	// Missing are the canonical names that could not be resolved.
	Missing []string

	// Expected lists, per missing field, the header names that would have matched.
	Expected map[string][]string

	// Found are the headers present in the file.
	Found []string
}

func (e *MissingFieldError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, field := range e.Missing {
		if names := e.Expected[field]; len(names) > 0 {
			parts = append(parts, fmt.Sprintf("%s (one of %s)", field, strings.Join(names, ", ")))
		} else {
			parts = append(parts, field)
		}
	}
	return fmt.Sprintf("missing dataset fields: %s; found columns: [%s]",
		strings.Join(parts, "; "), strings.Join(e.Found, ", "))
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Aliases maps a canonical field to the header names accepted for it, in
// priority order.
type Aliases map[string][]string

// DefaultAliases are the header names recognized out of the box.
func DefaultAliases() Aliases {
	return Aliases{
		FieldSong:       {"song", "track", "track_name", "title", "name", "song_name"},
		FieldArtist:     {"artist", "artists", "artist_name", "singer", "band"},
		FieldGenre:      {"genre", "genres", "track_genre", "category", "style"},
		FieldPopularity: {"popularity", "score", "plays", "rank"},
		FieldUser:       {"user", "user_id", "userid", "listener"},
	}
}

// Merge returns a copy of a with extra's names placed ahead of a's for each
// field. Field keys and names are normalized.
func (a Aliases) Merge(extra map[string][]string) Aliases {
	out := make(Aliases, len(a)+len(extra))
	for field, names := range extra {
		field = normalizeHeader(field)
		for _, name := range names {
			out[field] = appendUnique(out[field], normalizeHeader(name))
		}
	}
	for field, names := range a {
		field = normalizeHeader(field)
		for _, name := range names {
			out[field] = appendUnique(out[field], normalizeHeader(name))
		}
	}
	return out
}

func appendUnique(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// normalizeHeader trims, case-folds and joins words with underscores, so
// "Track Name", "track-name" and " TRACK_NAME " all become "track_name".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.FieldsFunc(h, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	}), "_")
}

// Schema maps canonical fields to column indexes of a table.
type Schema struct {
	columns map[string]int
	header  []string
}

// Column returns the column index of field.
func (s *Schema) Column(field string) (int, bool) {
	col, ok := s.columns[field]
	return col, ok
}

// Has reports whether field resolved to a column.
func (s *Schema) Has(field string) bool {
	_, ok := s.columns[field]
	return ok
}

// Header returns the original header name of field, or "".
func (s *Schema) Header(field string) string {
	if col, ok := s.columns[field]; ok {
		return s.header[col]
	}
	return ""
}

// ResolveSchema matches header against aliases and returns the schema, or
// a *MissingFieldError naming every required field that did not resolve.
//
// Fields claim columns in canonical order (song, artist, genre, popularity,
// user); within a field the first alias present in the header wins, and a
// column claimed by one field is not reused by another.
func ResolveSchema(header []string, aliases Aliases, required ...string) (*Schema, error) {
	if aliases == nil {
		aliases = DefaultAliases()
	}

	byName := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := byName[normalizeHeader(h)]; !dup {
			byName[normalizeHeader(h)] = i
		}
	}

	s := &Schema{columns: make(map[string]int), header: header}
	claimed := make(map[int]bool)
	for _, field := range canonicalOrder {
		names := aliases[field]
		if len(names) == 0 {
			names = []string{field}
		}
		for _, name := range names {
			col, ok := byName[normalizeHeader(name)]
			if ok && !claimed[col] {
				s.columns[field] = col
				claimed[col] = true
				break
			}
		}
	}

	var missing []string
	for _, field := range required {
		field = normalizeHeader(field)
		if !s.Has(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		expected := make(map[string][]string, len(missing))
		for _, field := range missing {
			expected[field] = aliases[field]
		}
		found := make([]string, len(header))
		for i, h := range header {
			found[i] = strings.TrimSpace(h)
		}
		return nil, &MissingFieldError{Missing: missing, Expected: expected, Found: found}
	}
	return s, nil
}
