// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// fakeDatasets records calls from the data layer services.
type fakeDatasets struct {
	paths   []string
	warmErr error
	stale   atomic.Bool

	warms atomic.Int32

	mu      sync.Mutex
	changed []string
	notify  chan string
}

func newFakeDatasets(paths ...string) *fakeDatasets {
	return &fakeDatasets{paths: paths, notify: make(chan string, 16)}
}

func (f *fakeDatasets) Warm(context.Context) error {
	f.warms.Add(1)
	f.stale.Store(false)
	return f.warmErr
}

func (f *fakeDatasets) Stale(context.Context) bool {
	return f.stale.Load()
}

func (f *fakeDatasets) Ready() bool {
	return f.warms.Load() > 0 && f.warmErr == nil && !f.stale.Load()
}

func (f *fakeDatasets) Changed(path, _ string) bool {
	for _, p := range f.paths {
		if p == path {
			f.mu.Lock()
			f.changed = append(f.changed, path)
			f.mu.Unlock()
			select {
			case f.notify <- path:
			default:
			}
			return true
		}
	}
	return false
}

func (f *fakeDatasets) Paths() []string {
	return f.paths
}

var errBuild = errors.New("build failed")
