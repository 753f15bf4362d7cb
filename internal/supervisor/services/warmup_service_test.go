// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/soundalike/internal/dataset"
	"github.com/tomtom215/soundalike/internal/library"
)

var _ suture.Service = (*WarmupService)(nil)

func TestWarmupServiceWarmsOnStart(t *testing.T) {
	ds := newFakeDatasets("songs.csv")
	svc := NewWarmupService(ds, 0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(time.Second)
	for ds.warms.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("Warm was not called")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if got := ds.warms.Load(); got != 1 {
		t.Errorf("Warm called %d times without polling, want 1", got)
	}
}

func TestWarmupServiceBuildFailureKeepsRunning(t *testing.T) {
	ds := newFakeDatasets("songs.csv")
	ds.warmErr = errBuild
	svc := NewWarmupService(ds, 0, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}

func TestWarmupServicePollsStaleDatasets(t *testing.T) {
	ds := newFakeDatasets("songs.csv")
	svc := NewWarmupService(ds, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Serve(ctx) }()

	// Let the initial warm and a few idle polls happen.
	time.Sleep(50 * time.Millisecond)
	idle := ds.warms.Load()
	if idle != 1 {
		t.Fatalf("Warm called %d times before any change, want 1", idle)
	}

	ds.stale.Store(true)
	deadline := time.After(time.Second)
	for ds.warms.Load() == idle {
		select {
		case <-deadline:
			t.Fatal("stale dataset was not rebuilt")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestWarmupServiceRecoversFromBrokenDataset(t *testing.T) {
	dir := t.TempDir()
	songs := filepath.Join(dir, "songs.csv")
	if err := os.WriteFile(songs, []byte("song,artist\nX,Coldplay\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	lib := library.New(library.Options{
		Catalog: dataset.CatalogSource{Path: songs},
		Logger:  zerolog.Nop(),
	})
	svc := NewWarmupService(lib, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	if lib.Ready() {
		t.Fatal("Ready() = true with a dataset missing the genre column")
	}

	fixed := []byte("song,artist,genre\nX,Coldplay,Rock\nY,Coldplay,Rock\n")
	if err := os.WriteFile(songs, fixed, 0o600); err != nil {
		t.Fatal(err)
	}
	mtime := time.Now().Add(time.Hour)
	if err := os.Chtimes(songs, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for !lib.Ready() {
		select {
		case <-deadline:
			t.Fatal("library did not become ready after the dataset was fixed")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
