// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := map[string]string{
		"plain":        "plain",
		"line\nbreak":  `line\x0abreak`,
		"tab\there":    `tab\x09here`,
		"del\x7f":      `del\x7f`,
		"unicode café": "unicode café",
	}
	for in, want := range tests {
		if got := sanitizeLogValue(in); got != want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]string{"X", "Y"})
	b := generateETag([]string{"X", "Y"})
	c := generateETag([]string{"Y", "X"})
	if a == "" || a != b {
		t.Errorf("ETag not stable: %q vs %q", a, b)
	}
	if a == c {
		t.Error("different payloads share an ETag")
	}
	if a[0] != '"' || a[len(a)-1] != '"' {
		t.Errorf("ETag %q is not quoted", a)
	}
}

func TestIntParam(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"k=7", 7, false},
		{"k=%207%20", 7, false},
		{"k=-2", -2, false},
		{"k=abc", 0, true},
		{"k=1.5", 0, true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		got, apiErr := intParam(req, "k")
		if (apiErr != nil) != tt.wantErr {
			t.Errorf("intParam(%q) error = %+v, wantErr %v", tt.query, apiErr, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("intParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
