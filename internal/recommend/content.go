// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package recommend

import (
	"sort"
)

// ContentModel answers "songs like X" queries from tag similarity.
// All state is built by NewContentModel and never modified afterwards.
type ContentModel struct {
	items      []Item
	byName     map[string]int
	vectorizer *Vectorizer
	matrix     *SimilarityMatrix
}

// NewContentModel vectorizes the tags of items and builds their similarity
// matrix. Item IDs are reassigned to their position in items. Returns
// ErrEmptyDataset when items is empty.
func NewContentModel(items []Item, maxVocabulary int) (*ContentModel, error) {
	if len(items) == 0 {
		return nil, ErrEmptyDataset
	}

	m := &ContentModel{
		items:  make([]Item, len(items)),
		byName: make(map[string]int, len(items)),
	}
	tags := make([]string, len(items))
	for i := range items {
		m.items[i] = items[i]
		m.items[i].ID = i
		tags[i] = items[i].Tag
		if _, dup := m.byName[items[i].Name]; !dup {
			m.byName[items[i].Name] = i
		}
	}

	m.vectorizer = NewVectorizer(tags, maxVocabulary)
	m.matrix = NewSimilarityMatrix(m.vectorizer.Vectors())
	return m, nil
}

// Len returns the number of songs.
func (m *ContentModel) Len() int {
	return len(m.items)
}

// Items returns a copy of the catalog in id order.
func (m *ContentModel) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Vocabulary returns the token vocabulary of the model.
func (m *ContentModel) Vocabulary() *Vocabulary {
	return m.vectorizer.Vocabulary()
}

// Lookup resolves a song name to the first catalog row with that exact name.
func (m *ContentModel) Lookup(name string) (Item, error) {
	id, ok := m.byName[name]
	if !ok {
		return Item{}, &ItemNotFoundError{Name: name}
	}
	return m.items[id], nil
}

// Similarity returns the cosine similarity of two song ids.
func (m *ContentModel) Similarity(i, j int) float64 {
	return m.matrix.At(i, j)
}

// Recommend returns the min(k, N-1) songs most similar to name, in
// descending score order with ties broken by ascending id. The queried
// song itself is never returned. k <= 0 means DefaultK.
func (m *ContentModel) Recommend(name string, k int) ([]Recommendation, error) {
	if k <= 0 {
		k = DefaultK
	}

	id, ok := m.byName[name]
	if !ok {
		return nil, &ItemNotFoundError{Name: name}
	}

	row := m.matrix.Row(id)
	candidates := make([]int, 0, len(m.items)-1)
	for j := range m.items {
		if j != id {
			candidates = append(candidates, j)
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		sa, sb := row[candidates[a]], row[candidates[b]]
		if sa != sb {
			return sa > sb
		}
		return candidates[a] < candidates[b]
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	recs := make([]Recommendation, k)
	for i := 0; i < k; i++ {
		recs[i] = Recommendation{Item: m.items[candidates[i]], Score: row[candidates[i]]}
	}
	return recs, nil
}
