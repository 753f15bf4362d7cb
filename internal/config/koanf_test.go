// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Dataset.Path != "data/songs.csv" {
		t.Errorf("Dataset.Path = %q, want data/songs.csv", cfg.Dataset.Path)
	}
	if cfg.Dataset.Reader != "csv" {
		t.Errorf("Dataset.Reader = %q, want csv", cfg.Dataset.Reader)
	}
	if !reflect.DeepEqual(cfg.Dataset.FeatureFields, []string{"artist", "genre"}) {
		t.Errorf("Dataset.FeatureFields = %v, want [artist genre]", cfg.Dataset.FeatureFields)
	}
	if cfg.Dataset.MaxVocabulary != 5000 {
		t.Errorf("Dataset.MaxVocabulary = %d, want 5000", cfg.Dataset.MaxVocabulary)
	}
	if cfg.Recommend.DefaultK != 5 {
		t.Errorf("Recommend.DefaultK = %d, want 5", cfg.Recommend.DefaultK)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Cache.WatchDebounce != 2*time.Second {
		t.Errorf("Cache.WatchDebounce = %v, want 2s", cfg.Cache.WatchDebounce)
	}
	if cfg.Server.RefreshTimeout != 5*time.Minute {
		t.Errorf("Server.RefreshTimeout = %v, want 5m", cfg.Server.RefreshTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// isolateEnv runs the test from an empty directory so no stray config.yaml is picked up.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(ConfigPathEnvVar, "")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DATASET_PATH", "/srv/spotify.csv")
	t.Setenv("DATASET_READER", "duckdb")
	t.Setenv("FEATURE_FIELDS", "artist, genre ,popularity")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RESULT_CACHE_TTL", "90s")
	t.Setenv("REFRESH_TIMEOUT", "10m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Dataset.Path != "/srv/spotify.csv" {
		t.Errorf("Dataset.Path = %q", cfg.Dataset.Path)
	}
	if cfg.Dataset.Reader != "duckdb" {
		t.Errorf("Dataset.Reader = %q", cfg.Dataset.Reader)
	}
	if !reflect.DeepEqual(cfg.Dataset.FeatureFields, []string{"artist", "genre", "popularity"}) {
		t.Errorf("Dataset.FeatureFields = %v", cfg.Dataset.FeatureFields)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Cache.ResultCacheTTL != 90*time.Second {
		t.Errorf("Cache.ResultCacheTTL = %v", cfg.Cache.ResultCacheTTL)
	}
	if cfg.Server.RefreshTimeout != 10*time.Minute {
		t.Errorf("Server.RefreshTimeout = %v", cfg.Server.RefreshTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "soundalike.yaml")
	content := `
dataset:
  path: songs.csv
  feature_fields: [artist, genre]
  aliases:
    song: [track_title]
    artist: [performer]
history:
  path: plays.csv
recommend:
  default_k: 10
server:
  port: 7000
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.History.Path != "plays.csv" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
	if cfg.Recommend.DefaultK != 10 {
		t.Errorf("Recommend.DefaultK = %d", cfg.Recommend.DefaultK)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("env should override file: Server.Port = %d", cfg.Server.Port)
	}
	if got := cfg.Dataset.Aliases["artist"]; len(got) != 1 || got[0] != "performer" {
		t.Errorf("Dataset.Aliases[artist] = %v", got)
	}
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "custom.yml")
	if err := os.WriteFile(path, []byte("recommend:\n  max_k: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recommend.MaxK != 20 {
		t.Errorf("Recommend.MaxK = %d, want 20", cfg.Recommend.MaxK)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolateEnv(t)
	if _, err := Load(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DATASET_READER", "xlsx")

	if _, err := Load(""); err == nil {
		t.Error("expected validation error for unknown reader")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DATASET_PATH", "dataset.path"},
		{"HISTORY_PATH", "history.path"},
		{"HTTP_PORT", "server.port"},
		{"REFRESH_TIMEOUT", "server.refresh_timeout"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
