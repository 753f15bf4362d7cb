// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FingerprintFunc identifies the current version of a snapshot's source,
// e.g. a file's path, modification time and size.
type FingerprintFunc func(ctx context.Context) (string, error)

// BuildFunc builds a snapshot value from its source.
type BuildFunc[T any] func(ctx context.Context) (T, error)

// Snapshot holds a value built once per source fingerprint.
//
// Get returns the stored value while the fingerprint is unchanged. When the
// value is missing or stale exactly one caller runs the build; concurrent
// callers wait for and share that build's result. Failed builds are not
// stored, so the next Get retries.
type Snapshot[T any] struct {
	name        string
	fingerprint FingerprintFunc
	build       BuildFunc[T]
	group       singleflight.Group

	mu         sync.RWMutex
	value      T
	key        string
	valid      bool
	builtAt    time.Time
	generation uint64
}

// SnapshotInfo describes the stored value.
type SnapshotInfo struct {
	Name        string    `json:"name"`
	Ready       bool      `json:"ready"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	BuiltAt     time.Time `json:"built_at,omitempty"`
	Generation  uint64    `json:"generation"`
}

// NewSnapshot creates an empty snapshot. Nothing is built until the first Get.
func NewSnapshot[T any](name string, fingerprint FingerprintFunc, build BuildFunc[T]) *Snapshot[T] {
	return &Snapshot[T]{name: name, fingerprint: fingerprint, build: build}
}

// Get returns the value for the source's current fingerprint, building it if needed.
// The boolean reports whether the value was already stored.
func (s *Snapshot[T]) Get(ctx context.Context) (T, bool, error) {
	var zero T

	key, err := s.fingerprint(ctx)
	if err != nil {
		return zero, false, fmt.Errorf("%s fingerprint: %w", s.name, err)
	}

	s.mu.RLock()
	if s.valid && s.key == key {
		value := s.value
		s.mu.RUnlock()
		return value, true, nil
	}
	generation := s.generation
	s.mu.RUnlock()

	// The flight key carries the generation so that builds started before an
	// Invalidate are never joined by callers arriving after it.
	flightKey := fmt.Sprintf("%d/%s", generation, key)
	v, err, _ := s.group.Do(flightKey, func() (interface{}, error) {
		s.mu.RLock()
		if s.valid && s.key == key {
			value := s.value
			s.mu.RUnlock()
			return value, nil
		}
		s.mu.RUnlock()

		value, err := s.build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generation == generation {
			s.value = value
			s.key = key
			s.valid = true
			s.builtAt = time.Now()
		}
		s.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return zero, false, err
	}
	value, _ := v.(T)
	return value, false, nil
}

// Peek returns the stored value without checking the fingerprint or building.
func (s *Snapshot[T]) Peek() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.valid
}

// Invalidate drops the stored value; the next Get rebuilds. A build already
// in flight still answers its own callers but is not stored.
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.value = zero
	s.key = ""
	s.valid = false
	s.builtAt = time.Time{}
	s.generation++
}

// Refresh invalidates and rebuilds immediately.
func (s *Snapshot[T]) Refresh(ctx context.Context) (T, error) {
	s.Invalidate()
	value, _, err := s.Get(ctx)
	return value, err
}

// Info reports the snapshot state.
func (s *Snapshot[T]) Info() SnapshotInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SnapshotInfo{
		Name:        s.name,
		Ready:       s.valid,
		Fingerprint: s.key,
		BuiltAt:     s.builtAt,
		Generation:  s.generation,
	}
}
