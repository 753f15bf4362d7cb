// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/soundalike/internal/library"
)

// slowRefreshLibrary takes longer to refresh than the server's WriteTimeout.
type slowRefreshLibrary struct {
	Library
	delay time.Duration
}

func (l slowRefreshLibrary) Refresh(ctx context.Context) (*library.Status, error) {
	select {
	case <-time.After(l.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &library.Status{}, nil
}

func TestRefreshOutlivesWriteTimeout(t *testing.T) {
	tests := []struct {
		name           string
		refreshTimeout time.Duration
		wantOK         bool
	}{
		{name: "server write timeout", refreshTimeout: 0, wantOK: false},
		{name: "refresh timeout", refreshTimeout: 5 * time.Second, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(slowRefreshLibrary{delay: 300 * time.Millisecond}, 50)
			handler.SetRefreshTimeout(tt.refreshTimeout)
			mc := DefaultChiMiddlewareConfig()
			mc.RateLimitDisabled = true

			srv := httptest.NewUnstartedServer(NewRouter(handler, mc).SetupChi())
			srv.Config.WriteTimeout = 50 * time.Millisecond
			srv.Start()
			defer srv.Close()

			// The default transport asks for gzip, so the compression writer is in the chain.
			resp, err := srv.Client().Post(srv.URL+"/api/v1/refresh", "application/json", nil)
			if !tt.wantOK {
				if err == nil {
					_, err = io.ReadAll(resp.Body)
					resp.Body.Close()
				}
				if err == nil {
					t.Fatal("refresh finished after the write timeout without an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("POST /refresh: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var env envelope
			if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Status != "success" {
				t.Errorf("envelope status = %q", env.Status)
			}
		})
	}
}
