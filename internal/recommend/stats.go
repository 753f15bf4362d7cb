// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package recommend

import (
	"sort"
	"strings"
)

// CatalogStats summarizes a song catalog.
type CatalogStats struct {
	TotalItems   int  `json:"total_songs"`
	TotalArtists int  `json:"total_artists"`
	TotalGenres  int  `json:"total_genres"`
	Popularity   bool `json:"has_popularity"`

	items   []Item
	artists []ArtistCount
}

// NewCatalogStats computes statistics over items. Artists and genres are
// counted as distinct non-empty trimmed values, case-sensitively.
func NewCatalogStats(items []Item) *CatalogStats {
	s := &CatalogStats{
		TotalItems: len(items),
		items:      append([]Item(nil), items...),
	}

	artistIndex := make(map[string]int)
	genres := make(map[string]struct{})
	for i := range items {
		if items[i].HasPopularity {
			s.Popularity = true
		}
		if genre := strings.TrimSpace(items[i].Genre); genre != "" {
			genres[genre] = struct{}{}
		}
		artist := strings.TrimSpace(items[i].Artist)
		if artist == "" {
			continue
		}
		if idx, ok := artistIndex[artist]; ok {
			s.artists[idx].Songs++
			continue
		}
		artistIndex[artist] = len(s.artists)
		s.artists = append(s.artists, ArtistCount{Artist: artist, Songs: 1})
	}
	s.TotalArtists = len(s.artists)
	s.TotalGenres = len(genres)

	// Stable on first-appearance order, so ties keep it.
	sort.SliceStable(s.artists, func(i, j int) bool {
		return s.artists[i].Songs > s.artists[j].Songs
	})
	return s
}

// TopArtists returns the n artists with the most songs.
func (s *CatalogStats) TopArtists(n int) []ArtistCount {
	if n <= 0 || n > len(s.artists) {
		n = len(s.artists)
	}
	return append([]ArtistCount(nil), s.artists[:n]...)
}

// TopSongs returns n songs ordered by popularity (highest first, ties by
// id) when the catalog has a popularity column, or in catalog order when
// it does not.
func (s *CatalogStats) TopSongs(n int) []Item {
	if n <= 0 || n > len(s.items) {
		n = len(s.items)
	}

	ordered := append([]Item(nil), s.items...)
	if s.Popularity {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Popularity > ordered[j].Popularity
		})
	}
	return ordered[:n]
}

// Names returns the song names in catalog order.
func (s *CatalogStats) Names() []string {
	names := make([]string, len(s.items))
	for i := range s.items {
		names[i] = s.items[i].Name
	}
	return names
}
