// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package recommend

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultMaxVocabulary bounds the vocabulary when no size is configured.
const DefaultMaxVocabulary = 5000

// Tokenize lowercases s and splits it on every rune that is not a letter or digit.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Vocabulary maps tokens to vector columns. It is immutable once built.
type Vocabulary struct {
	terms []string
	freqs []int
	index map[string]int
}

// Len returns the number of tokens (the vector dimension).
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Index returns the column of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Terms returns the tokens in column order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Frequency returns the corpus frequency of the token in column i.
func (v *Vocabulary) Frequency(i int) int {
	return v.freqs[i]
}

// buildVocabulary keeps the maxSize most frequent tokens of the corpus.
// Equal frequencies keep first-encounter order, and columns are assigned in
// that ranked order.
func buildVocabulary(docs [][]string, maxSize int) *Vocabulary {
	counts := make(map[string]int)
	var order []string
	for _, tokens := range docs {
		for _, tok := range tokens {
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxSize {
		order = order[:maxSize]
	}

	vocab := &Vocabulary{
		terms: order,
		freqs: make([]int, len(order)),
		index: make(map[string]int, len(order)),
	}
	for i, term := range order {
		vocab.index[term] = i
		vocab.freqs[i] = counts[term]
	}
	return vocab
}

// FeatureVector is a token count vector over a Vocabulary. Only non-zero
// columns are stored: Indices is ascending and Counts is parallel to it.
type FeatureVector struct {
	Indices []int
	Counts  []int
}

// Dense expands the vector to its full dimension.
func (f FeatureVector) Dense(dim int) []int {
	out := make([]int, dim)
	for i, col := range f.Indices {
		out[col] = f.Counts[i]
	}
	return out
}

// Dot returns the dot product of two vectors over the same vocabulary.
func (f FeatureVector) Dot(g FeatureVector) int {
	dot := 0
	i, j := 0, 0
	for i < len(f.Indices) && j < len(g.Indices) {
		switch {
		case f.Indices[i] == g.Indices[j]:
			dot += f.Counts[i] * g.Counts[j]
			i++
			j++
		case f.Indices[i] < g.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// SquaredNorm returns the dot product of the vector with itself.
func (f FeatureVector) SquaredNorm() int {
	sum := 0
	for _, c := range f.Counts {
		sum += c * c
	}
	return sum
}

// IsZero reports whether no vocabulary token occurs in the vector.
func (f FeatureVector) IsZero() bool {
	return len(f.Indices) == 0
}

// Vectorizer holds a vocabulary fitted on a tag corpus and the count
// vector of every tag in that corpus.
type Vectorizer struct {
	vocab   *Vocabulary
	vectors []FeatureVector
}

// NewVectorizer fits a vocabulary of at most maxVocabulary tokens on tags and
// vectorizes every tag. maxVocabulary <= 0 uses DefaultMaxVocabulary.
// The result depends only on tags and maxVocabulary.
func NewVectorizer(tags []string, maxVocabulary int) *Vectorizer {
	if maxVocabulary <= 0 {
		maxVocabulary = DefaultMaxVocabulary
	}

	docs := make([][]string, len(tags))
	for i, tag := range tags {
		docs[i] = Tokenize(tag)
	}

	v := &Vectorizer{vocab: buildVocabulary(docs, maxVocabulary)}
	v.vectors = make([]FeatureVector, len(docs))
	for i, tokens := range docs {
		v.vectors[i] = v.vectorize(tokens)
	}
	return v
}

// Vocabulary returns the fitted vocabulary.
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocab
}

// Vectors returns the corpus vectors, indexed like the tags passed to
// NewVectorizer. The slice is shared and must not be modified.
func (v *Vectorizer) Vectors() []FeatureVector {
	return v.vectors
}

// Transform vectorizes a tag that was not part of the corpus.
// Tokens outside the vocabulary are dropped.
func (v *Vectorizer) Transform(tag string) FeatureVector {
	return v.vectorize(Tokenize(tag))
}

func (v *Vectorizer) vectorize(tokens []string) FeatureVector {
	counts := make(map[int]int, len(tokens))
	for _, tok := range tokens {
		if col, ok := v.vocab.index[tok]; ok {
			counts[col]++
		}
	}

	fv := FeatureVector{
		Indices: make([]int, 0, len(counts)),
		Counts:  make([]int, 0, len(counts)),
	}
	for col := range counts {
		fv.Indices = append(fv.Indices, col)
	}
	sort.Ints(fv.Indices)
	for _, col := range fv.Indices {
		fv.Counts = append(fv.Counts, counts[col])
	}
	return fv
}
