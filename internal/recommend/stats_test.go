// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package recommend

import (
	"reflect"
	"testing"
)

func TestCatalogStats_Totals(t *testing.T) {
	s := NewCatalogStats(catalog())

	if s.TotalItems != 8 {
		t.Errorf("TotalItems = %d, want 8", s.TotalItems)
	}
	// Coldplay, Beyonce, Adele, Radiohead, Someone Else
	if s.TotalArtists != 5 {
		t.Errorf("TotalArtists = %d, want 5", s.TotalArtists)
	}
	// rock, pop, jazz, pop soul
	if s.TotalGenres != 4 {
		t.Errorf("TotalGenres = %d, want 4", s.TotalGenres)
	}
	if s.Popularity {
		t.Error("catalog without popularity reported Popularity")
	}
}

func TestCatalogStats_TopArtists(t *testing.T) {
	s := NewCatalogStats(catalog())

	want := []ArtistCount{{"Coldplay", 2}, {"Adele", 2}, {"Beyonce", 1}}
	if got := s.TopArtists(3); !reflect.DeepEqual(got, want) {
		t.Errorf("TopArtists(3) = %v, want %v", got, want)
	}
	if got := len(s.TopArtists(0)); got != 5 {
		t.Errorf("TopArtists(0) returned %d, want all 5", got)
	}
}

func TestCatalogStats_TopSongs(t *testing.T) {
	items := []Item{
		{ID: 0, Name: "Low", Popularity: 10, HasPopularity: true},
		{ID: 1, Name: "High", Popularity: 90, HasPopularity: true},
		{ID: 2, Name: "TieA", Popularity: 50, HasPopularity: true},
		{ID: 3, Name: "TieB", Popularity: 50, HasPopularity: true},
	}
	s := NewCatalogStats(items)

	var got []string
	for _, it := range s.TopSongs(3) {
		got = append(got, it.Name)
	}
	if want := []string{"High", "TieA", "TieB"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TopSongs(3) = %v, want %v", got, want)
	}
}

func TestCatalogStats_TopSongsWithoutPopularity(t *testing.T) {
	s := NewCatalogStats(catalog())

	top := s.TopSongs(2)
	if len(top) != 2 || top[0].Name != "Yellow" || top[1].Name != "Clocks" {
		t.Errorf("TopSongs(2) without popularity = %v, want catalog order", top)
	}
}

func TestCatalogStats_Names(t *testing.T) {
	s := NewCatalogStats(catalog()[:3])
	if got := s.Names(); !reflect.DeepEqual(got, []string{"Yellow", "Clocks", "Halo"}) {
		t.Errorf("Names() = %v", got)
	}
}
