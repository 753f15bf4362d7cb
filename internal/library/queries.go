// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package library

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/soundalike/internal/metrics"
	"github.com/tomtom215/soundalike/internal/recommend"
)

// Query kinds used for metrics labels and result cache keys.
const (
	KindSimilar    = "similar"
	KindTopPlayed  = "top_played"
	KindSummary    = "summary"
	KindStats      = "stats"
	KindTopArtists = "top_artists"
	KindTopSongs   = "top_songs"
	KindSongs      = "songs"
	KindSong       = "song"
)

// CatalogSummary holds the catalog totals.
type CatalogSummary struct {
	TotalSongs   int  `json:"total_songs"`
	TotalArtists int  `json:"total_artists"`
	TotalGenres  int  `json:"total_genres"`
	Popularity   bool `json:"has_popularity"`
}

func (l *Library) clampK(k int) int {
	if k <= 0 {
		k = l.opts.DefaultK
	}
	if l.opts.MaxK > 0 && k > l.opts.MaxK {
		k = l.opts.MaxK
	}
	return k
}

func (l *Library) loadCatalog(ctx context.Context) (*catalogModel, error) {
	if l.catalog == nil {
		return nil, ErrCatalogNotConfigured
	}
	m, cached, err := l.catalog.Get(ctx)
	metrics.RecordCacheLookup("snapshot", cached)
	return m, err
}

func (l *Library) loadHistory(ctx context.Context) (*historyModel, error) {
	if l.history == nil {
		return nil, ErrHistoryNotConfigured
	}
	m, cached, err := l.history.Get(ctx)
	metrics.RecordCacheLookup("snapshot", cached)
	return m, err
}

// memoize answers key from the result cache, or computes and stores it.
// Callers receive a clone, never the stored value, so a caller that edits
// its result cannot change what later callers see.
func memoize[T any](l *Library, key string, clone func(T) T, compute func() (T, error)) (T, error) {
	if l.results != nil {
		if v, ok := l.results.Get(key); ok {
			if result, ok := v.(T); ok {
				metrics.RecordCacheLookup("result", true)
				return clone(result), nil
			}
		}
		metrics.RecordCacheLookup("result", false)
	}

	result, err := compute()
	if err != nil {
		return result, err
	}
	if l.results == nil {
		return result, nil
	}
	l.results.Add(key, result)
	metrics.CacheSize.WithLabelValues("result").Set(float64(l.results.Len()))
	return clone(result), nil
}

func cloneSummary(s *recommend.ListeningSummary) *recommend.ListeningSummary {
	c := *s
	c.Top = slices.Clone(s.Top)
	return &c
}

// Recommend returns the songs most similar to name. k <= 0 uses the
// configured default and values above the configured maximum are capped.
func (l *Library) Recommend(ctx context.Context, name string, k int) (result []recommend.Recommendation, err error) {
	defer observe(KindSimilar, time.Now(), &err)

	m, err := l.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	k = l.clampK(k)
	key := fmt.Sprintf("%s/%s/%d/%s", m.id, KindSimilar, k, name)
	return memoize(l, key, slices.Clone[[]recommend.Recommendation], func() ([]recommend.Recommendation, error) {
		return m.model.Recommend(name, k)
	})
}

// Song returns the catalog entry for name.
func (l *Library) Song(ctx context.Context, name string) (item recommend.Item, err error) {
	defer observe(KindSong, time.Now(), &err)

	m, err := l.loadCatalog(ctx)
	if err != nil {
		return recommend.Item{}, err
	}
	return m.model.Lookup(name)
}

// Songs returns every song name in catalog order.
func (l *Library) Songs(ctx context.Context) (names []string, err error) {
	defer observe(KindSongs, time.Now(), &err)

	m, err := l.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return m.stats.Names(), nil
}

// Stats returns the catalog totals.
func (l *Library) Stats(ctx context.Context) (summary *CatalogSummary, err error) {
	defer observe(KindStats, time.Now(), &err)

	m, err := l.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogSummary{
		TotalSongs:   m.stats.TotalItems,
		TotalArtists: m.stats.TotalArtists,
		TotalGenres:  m.stats.TotalGenres,
		Popularity:   m.stats.Popularity,
	}, nil
}

// TopArtists returns the n artists with the most songs. n <= 0 returns all.
func (l *Library) TopArtists(ctx context.Context, n int) (artists []recommend.ArtistCount, err error) {
	defer observe(KindTopArtists, time.Now(), &err)

	m, err := l.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%s/%d", m.id, KindTopArtists, n)
	return memoize(l, key, slices.Clone[[]recommend.ArtistCount], func() ([]recommend.ArtistCount, error) {
		return m.stats.TopArtists(n), nil
	})
}

// TopSongs returns the n most popular songs. n <= 0 returns all.
func (l *Library) TopSongs(ctx context.Context, n int) (songs []recommend.Item, err error) {
	defer observe(KindTopSongs, time.Now(), &err)

	m, err := l.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%s/%d", m.id, KindTopSongs, n)
	return memoize(l, key, slices.Clone[[]recommend.Item], func() ([]recommend.Item, error) {
		return m.stats.TopSongs(n), nil
	})
}

// TopPlayed returns the user's k most played songs.
func (l *Library) TopPlayed(ctx context.Context, user string, k int) (ranked []recommend.PlayCount, err error) {
	defer observe(KindTopPlayed, time.Now(), &err)

	m, err := l.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	k = l.clampK(k)
	key := fmt.Sprintf("%s/%s/%d/%s", m.id, KindTopPlayed, k, user)
	return memoize(l, key, slices.Clone[[]recommend.PlayCount], func() ([]recommend.PlayCount, error) {
		return m.matrix.TopPlayed(user, k)
	})
}

// ListeningSummary returns the user's listening summary with the top k songs.
func (l *Library) ListeningSummary(ctx context.Context, user string, k int) (summary *recommend.ListeningSummary, err error) {
	defer observe(KindSummary, time.Now(), &err)

	m, err := l.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	k = l.clampK(k)
	key := fmt.Sprintf("%s/%s/%d/%s", m.id, KindSummary, k, user)
	return memoize(l, key, cloneSummary, func() (*recommend.ListeningSummary, error) {
		return m.matrix.Summary(user, k)
	})
}

func observe(kind string, start time.Time, err *error) {
	metrics.RecordQuery(kind, time.Since(start), *err, recommend.ErrItemNotFound, recommend.ErrUserNotFound)
}
