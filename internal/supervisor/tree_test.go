// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

// countingService counts starts and fails its first failures runs.
type countingService struct {
	name     string
	failures int32
	starts   atomic.Int32
}

func (s *countingService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	if n <= s.failures {
		return fmt.Errorf("%s: failure %d", s.name, n)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) String() string {
	return s.name
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForStarts(t *testing.T, svc *countingService, want int32) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for svc.starts.Load() < want {
		select {
		case <-deadline:
			t.Fatalf("%s started %d times, want at least %d", svc.name, svc.starts.Load(), want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewSupervisorTreeDefaults(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("Root() = nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want %+v", tree.config, DefaultTreeConfig())
	}

	custom := TreeConfig{FailureThreshold: 2, FailureDecay: 1, FailureBackoff: time.Second, ShutdownTimeout: time.Second}
	tree, err = NewSupervisorTree(quietLogger(), custom)
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.config != custom {
		t.Errorf("config = %+v, want %+v", tree.config, custom)
	}
}

func TestSupervisorTreeStartsBothLayers(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	data := &countingService{name: "data"}
	api := &countingService{name: "api"}
	tree.AddDataService(data)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitForStarts(t, data, 1)
	waitForStarts(t, api, 1)
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTreeRestartsFailingDataService(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}

	watcher := &countingService{name: "watcher", failures: 2}
	api := &countingService{name: "api"}
	tree.AddDataService(watcher)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	waitForStarts(t, watcher, 3)
	waitForStarts(t, api, 1)
	if got := api.starts.Load(); got != 1 {
		t.Errorf("api restarted %d times by a data layer failure", got-1)
	}

	cancel()
	<-errCh
}
