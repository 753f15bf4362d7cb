// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package recommend

import (
	"fmt"
	"sort"
)

// PlayMatrix is a user x song table of historical play counts.
type PlayMatrix struct {
	songs     []string
	users     []string
	userIndex map[string]int
	counts    [][]int
}

// NewPlayMatrix builds a play matrix. counts[u][s] is the number of plays
// of songs[s] by users[u]; negative counts are stored as 0. A user id that
// appears more than once resolves to its first row.
func NewPlayMatrix(songs, users []string, counts [][]int) (*PlayMatrix, error) {
	if len(users) == 0 || len(songs) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(counts) != len(users) {
		return nil, fmt.Errorf("play matrix has %d rows for %d users", len(counts), len(users))
	}

	p := &PlayMatrix{
		songs:     append([]string(nil), songs...),
		users:     append([]string(nil), users...),
		userIndex: make(map[string]int, len(users)),
		counts:    make([][]int, len(users)),
	}
	for u, row := range counts {
		if len(row) != len(songs) {
			return nil, fmt.Errorf("play matrix row %d has %d counts for %d songs", u, len(row), len(songs))
		}
		p.counts[u] = make([]int, len(row))
		for s, c := range row {
			if c > 0 {
				p.counts[u][s] = c
			}
		}
		if _, dup := p.userIndex[users[u]]; !dup {
			p.userIndex[users[u]] = u
		}
	}
	return p, nil
}

// Songs returns the song columns in file order.
func (p *PlayMatrix) Songs() []string {
	return append([]string(nil), p.songs...)
}

// Users returns the user ids in file order.
func (p *PlayMatrix) Users() []string {
	return append([]string(nil), p.users...)
}

// ranking returns every song of the user's row by play count, highest
// first. The sort is stable, so equal counts keep column order.
func (p *PlayMatrix) ranking(user string) ([]PlayCount, error) {
	u, ok := p.userIndex[user]
	if !ok {
		return nil, &UserNotFoundError{User: user}
	}

	ranked := make([]PlayCount, len(p.songs))
	for s, song := range p.songs {
		ranked[s] = PlayCount{Song: song, Plays: p.counts[u][s]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Plays > ranked[j].Plays
	})
	return ranked, nil
}

// TopPlayed returns the user's k most played songs. k <= 0 means DefaultK.
func (p *PlayMatrix) TopPlayed(user string, k int) ([]PlayCount, error) {
	ranked, err := p.ranking(user)
	if err != nil {
		return nil, err
	}
	return head(ranked, k), nil
}

// Summary returns the user's listening summary with the top k songs.
func (p *PlayMatrix) Summary(user string, k int) (*ListeningSummary, error) {
	ranked, err := p.ranking(user)
	if err != nil {
		return nil, err
	}

	summary := &ListeningSummary{User: user, Top: head(ranked, k)}
	for _, pc := range ranked {
		if pc.Plays > 0 {
			summary.SongsPlayed++
			summary.TotalPlays += pc.Plays
		}
	}
	if len(ranked) > 0 && ranked[0].Plays > 0 {
		summary.MostPlayed = ranked[0].Song
	}
	return summary, nil
}

func head(ranked []PlayCount, k int) []PlayCount {
	if k <= 0 {
		k = DefaultK
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k:k]
}
