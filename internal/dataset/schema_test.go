// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"song":          "song",
		" Track Name ":  "track_name",
		"track-name":    "track_name",
		"TRACK__NAME":   "track_name",
		"Artist Name\t": "artist_name",
		"":              "",
	}
	for in, want := range tests {
		if got := normalizeHeader(in); got != want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveSchema(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		required []string
		want     map[string]int
		missing  []string
	}{
		{
			name:     "canonical names",
			header:   []string{"song", "artist", "genre", "popularity"},
			required: []string{FieldSong, FieldArtist, FieldGenre},
			want:     map[string]int{FieldSong: 0, FieldArtist: 1, FieldGenre: 2, FieldPopularity: 3},
		},
		{
			name:     "aliases and spacing",
			header:   []string{"Track Name", "Artists", "track_genre"},
			required: []string{FieldSong, FieldArtist, FieldGenre},
			want:     map[string]int{FieldSong: 0, FieldArtist: 1, FieldGenre: 2},
		},
		{
			name:     "first alias in priority order wins",
			header:   []string{"title", "song", "artist"},
			required: []string{FieldSong},
			want:     map[string]int{FieldSong: 1, FieldArtist: 2},
		},
		{
			name:     "missing genre",
			header:   []string{"song", "artist"},
			required: []string{FieldSong, FieldArtist, FieldGenre},
			missing:  []string{FieldGenre},
		},
		{
			name:     "missing everything",
			header:   []string{"foo", "bar"},
			required: []string{FieldSong, FieldArtist},
			missing:  []string{FieldSong, FieldArtist},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ResolveSchema(tt.header, nil, tt.required...)
			if len(tt.missing) > 0 {
				var mfe *MissingFieldError
				if !errors.As(err, &mfe) {
					t.Fatalf("error = %v, want *MissingFieldError", err)
				}
				if !errors.Is(err, ErrMissingField) {
					t.Error("errors.Is(err, ErrMissingField) = false")
				}
				if strings.Join(mfe.Missing, ",") != strings.Join(tt.missing, ",") {
					t.Errorf("Missing = %v, want %v", mfe.Missing, tt.missing)
				}
				if len(mfe.Found) != len(tt.header) {
					t.Errorf("Found = %v, want %v", mfe.Found, tt.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveSchema() error = %v", err)
			}
			for field, col := range tt.want {
				got, ok := s.Column(field)
				if !ok || got != col {
					t.Errorf("Column(%s) = %d, %v; want %d", field, got, ok, col)
				}
			}
		})
	}
}

func TestResolveSchemaColumnClaimedOnce(t *testing.T) {
	aliases := DefaultAliases().Merge(map[string][]string{
		FieldGenre: {"artist"},
	})
	s, err := ResolveSchema([]string{"song", "artist"}, aliases, FieldSong)
	if err != nil {
		t.Fatalf("ResolveSchema() error = %v", err)
	}
	if col, _ := s.Column(FieldArtist); col != 1 {
		t.Errorf("artist column = %d, want 1", col)
	}
	if s.Has(FieldGenre) {
		t.Error("genre reused the artist column")
	}
}

func TestAliasesMerge(t *testing.T) {
	merged := DefaultAliases().Merge(map[string][]string{
		"Genre": {"Sub Genre", "genre"},
	})
	got := merged[FieldGenre]
	if len(got) == 0 || got[0] != "sub_genre" {
		t.Fatalf("merged genre aliases = %v, want sub_genre first", got)
	}
	count := 0
	for _, name := range got {
		if name == "genre" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("genre appears %d times, want 1", count)
	}

	s, err := ResolveSchema([]string{"Name", "Band", "Sub-Genre"}, merged, FieldSong, FieldArtist, FieldGenre)
	if err != nil {
		t.Fatalf("ResolveSchema() error = %v", err)
	}
	if s.Header(FieldGenre) != "Sub-Genre" {
		t.Errorf("Header(genre) = %q", s.Header(FieldGenre))
	}
}

func TestMissingFieldErrorMessage(t *testing.T) {
	err := &MissingFieldError{
		Missing:  []string{FieldGenre},
		Expected: map[string][]string{FieldGenre: {"genre", "style"}},
		Found:    []string{"song", "artist"},
	}
	msg := err.Error()
	for _, want := range []string{"genre (one of genre, style)", "found columns: [song, artist]"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want substring %q", msg, want)
		}
	}
}
