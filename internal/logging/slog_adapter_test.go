// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))

	logger.With("service", "warmup").WithGroup("build").Error("restarting",
		"attempt", 3,
		"backoff", 2*time.Second,
		"fatal", false,
	)

	output := buf.String()
	for _, want := range []string{
		`"level":"error"`,
		`"service":"warmup"`,
		`"build.attempt":3`,
		`"build.fatal":false`,
		"restarting",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(NewTestLogger(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for warn-level logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for warn-level logger")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
