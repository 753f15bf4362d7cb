// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package recommend

import (
	"math"
	"runtime"
	"sync"
)

// SimilarityMatrix holds the cosine similarity of every pair of items.
// It is symmetric, read-only after construction and indexed by item id.
type SimilarityMatrix struct {
	n      int
	scores []float64 // row-major n*n
}

// NewSimilarityMatrix computes all-pairs cosine similarity.
//
// sim(i,j) = dot(v_i, v_j) / (|v_i| |v_j|), and 0 when either vector is
// zero. The diagonal is exactly 1 for non-zero vectors and 0 otherwise.
// Only the upper triangle is computed and each value is mirrored, so the
// matrix is exactly symmetric. Rows are spread over runtime.NumCPU()
// goroutines; each cell has a single writer.
func NewSimilarityMatrix(vectors []FeatureVector) *SimilarityMatrix {
	n := len(vectors)
	m := &SimilarityMatrix{n: n, scores: make([]float64, n*n)}
	if n == 0 {
		return m
	}

	squared := make([]int, n)
	for i := range vectors {
		squared[i] = vectors[i].SquaredNorm()
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	rows := make(chan int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				m.fillRow(i, vectors, squared)
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	return m
}

// fillRow writes cells (i, j) and (j, i) for every j >= i.
func (m *SimilarityMatrix) fillRow(i int, vectors []FeatureVector, squared []int) {
	if squared[i] == 0 {
		return
	}
	m.scores[i*m.n+i] = 1

	for j := i + 1; j < m.n; j++ {
		if squared[j] == 0 {
			continue
		}
		dot := vectors[i].Dot(vectors[j])
		if dot == 0 {
			continue
		}
		// sqrt of the product keeps identical vectors at exactly 1.
		score := math.Min(1, float64(dot)/math.Sqrt(float64(squared[i])*float64(squared[j])))
		m.scores[i*m.n+j] = score
		m.scores[j*m.n+i] = score
	}
}

// Len returns the number of items.
func (m *SimilarityMatrix) Len() int {
	return m.n
}

// At returns sim(i, j).
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.scores[i*m.n+j]
}

// Row returns the similarities of item i to every item. The slice aliases
// the matrix and must not be modified.
func (m *SimilarityMatrix) Row(i int) []float64 {
	return m.scores[i*m.n : (i+1)*m.n : (i+1)*m.n]
}
