// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package recommend

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Coldplay Rock", []string{"coldplay", "rock"}},
		{"AC/DC hard-rock", []string{"ac", "dc", "hard", "rock"}},
		{"  Beyoncé   R&B ", []string{"beyoncé", "r", "b"}},
		{"blink-182 pop_punk", []string{"blink", "182", "pop", "punk"}},
		{"", nil},
		{"!!!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewVectorizer_VocabularyOrder(t *testing.T) {
	tags := []string{
		"a1 pop",
		"a2 rock",
		"a1 rock",
		"a3 jazz",
	}
	v := NewVectorizer(tags, 0)

	// rock and a1 appear twice; a1 was seen first. The singletons keep
	// first-encounter order.
	want := []string{"a1", "rock", "pop", "a2", "a3", "jazz"}
	if got := v.Vocabulary().Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
	if got := v.Vocabulary().Frequency(1); got != 2 {
		t.Errorf("Frequency(rock) = %d, want 2", got)
	}
}

func TestNewVectorizer_MaxVocabulary(t *testing.T) {
	tags := []string{"x y z", "x y", "x", "w"}
	v := NewVectorizer(tags, 2)

	if got := v.Vocabulary().Len(); got != 2 {
		t.Fatalf("vocabulary size = %d, want 2", got)
	}
	if _, ok := v.Vocabulary().Index("z"); ok {
		t.Error("z should be outside the vocabulary")
	}

	// Every vector has the vocabulary's dimension; "w" has no known tokens.
	for i, fv := range v.Vectors() {
		if dense := fv.Dense(v.Vocabulary().Len()); len(dense) != 2 {
			t.Errorf("vector %d has length %d", i, len(dense))
		}
	}
	if !v.Vectors()[3].IsZero() {
		t.Error("tag with only dropped tokens should vectorize to zero")
	}
	if got := v.Vectors()[0].Dense(2); !reflect.DeepEqual(got, []int{1, 1}) {
		t.Errorf("vector(x y z) = %v, want [1 1]", got)
	}
}

func TestNewVectorizer_Deterministic(t *testing.T) {
	tags := []string{"drake hip hop", "adele pop soul", "drake rnb", "adele pop", "queen rock"}

	a := NewVectorizer(tags, 4)
	b := NewVectorizer(tags, 4)

	if !reflect.DeepEqual(a.Vocabulary().Terms(), b.Vocabulary().Terms()) {
		t.Errorf("vocabularies differ: %v vs %v", a.Vocabulary().Terms(), b.Vocabulary().Terms())
	}
	if !reflect.DeepEqual(a.Vectors(), b.Vectors()) {
		t.Error("vectors differ between identical builds")
	}
}

func TestVectorizer_TransformCounts(t *testing.T) {
	v := NewVectorizer([]string{"pop rock", "pop"}, 0)

	fv := v.Transform("Pop pop POP metal")
	dense := fv.Dense(v.Vocabulary().Len())
	popCol, _ := v.Vocabulary().Index("pop")
	if dense[popCol] != 3 {
		t.Errorf("pop count = %d, want 3", dense[popCol])
	}
	if fv.SquaredNorm() != 9 {
		t.Errorf("SquaredNorm() = %d, want 9", fv.SquaredNorm())
	}
}

func TestFeatureVector_Dot(t *testing.T) {
	a := FeatureVector{Indices: []int{0, 2, 5}, Counts: []int{1, 2, 3}}
	b := FeatureVector{Indices: []int{2, 3, 5}, Counts: []int{4, 1, 1}}

	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot() = %d, want 11", got)
	}
	if got := a.Dot(FeatureVector{}); got != 0 {
		t.Errorf("Dot(zero) = %d, want 0", got)
	}
}
