// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package recommend

// DefaultK is the number of results returned when a query asks for k <= 0.
const DefaultK = 5

// Item is one song of the loaded catalog.
type Item struct {
	// ID is the row index in the loaded table, stable for the lifetime of the model.
	ID int `json:"id"`

	// Name is the lookup key. Duplicates resolve to the first row.
	Name string `json:"name"`

	Artist string `json:"artist"`
	Genre  string `json:"genre"`

	// Popularity is only meaningful when HasPopularity is set.
	Popularity    float64 `json:"popularity,omitempty"`
	HasPopularity bool    `json:"-"`

	// Tag is the text the feature vector is built from.
	Tag string `json:"tag,omitempty"`
}

// Recommendation is a song returned by a content query with its similarity
// to the queried song.
type Recommendation struct {
	Item

	// Score is the cosine similarity in [0, 1].
	Score float64 `json:"score"`
}

// PlayCount is one song of a user's listening history.
type PlayCount struct {
	Song  string `json:"song"`
	Plays int    `json:"plays"`
}

// ListeningSummary describes a user's listening history.
// All fields derive from one ranking, so MostPlayed is always Top[0].Song
// when the user has any plays.
type ListeningSummary struct {
	User string `json:"user"`

	// SongsPlayed is the number of songs with at least one play.
	SongsPlayed int `json:"songs_played"`

	// TotalPlays is the sum of all play counts.
	TotalPlays int `json:"total_plays"`

	// MostPlayed is empty when the user has no plays.
	MostPlayed string `json:"most_played"`

	// Top holds the first k entries of the ranking.
	Top []PlayCount `json:"top"`
}

// ArtistCount is an artist with the number of catalog songs credited to them.
type ArtistCount struct {
	Artist string `json:"artist"`
	Songs  int    `json:"songs"`
}
