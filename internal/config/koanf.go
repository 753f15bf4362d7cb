// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/soundalike/config.yaml",
	"/etc/soundalike/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the configuration applied before file and env layers.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:          "data/songs.csv",
			Reader:        "csv",
			FeatureFields: []string{"artist", "genre"},
			MaxVocabulary: 5000,
		},
		History: HistoryConfig{
			Reader: "csv",
		},
		Recommend: RecommendConfig{
			DefaultK: 5,
			MaxK:     100,
		},
		Cache: CacheConfig{
			Watch:           true,
			WatchDebounce:   2 * time.Second,
			PollInterval:    0,
			ResultCacheSize: 1024,
			ResultCacheTTL:  10 * time.Minute,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			Timeout:           30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RefreshTimeout:    5 * time.Minute,
			CORSOrigins:       []string{"*"},
			RateLimitEnabled:  true,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration from defaults, the YAML file at path (or the
// first file found by CONFIG_PATH / DefaultConfigPaths when path is empty),
// and environment variables, then validates it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: struct defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none is found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"dataset.feature_fields",
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	"dataset_path":         "dataset.path",
	"dataset_reader":       "dataset.reader",
	"feature_fields":       "dataset.feature_fields",
	"max_vocabulary":       "dataset.max_vocabulary",
	"history_path":         "history.path",
	"history_reader":       "history.reader",
	"default_k":            "recommend.default_k",
	"max_k":                "recommend.max_k",
	"cache_watch":          "cache.watch",
	"cache_watch_debounce": "cache.watch_debounce",
	"cache_poll_interval":  "cache.poll_interval",
	"result_cache_size":    "cache.result_cache_size",
	"result_cache_ttl":     "cache.result_cache_ttl",
	"http_host":            "server.host",
	"http_port":            "server.port",
	"http_timeout":         "server.timeout",
	"shutdown_timeout":     "server.shutdown_timeout",
	"refresh_timeout":      "server.refresh_timeout",
	"cors_origins":         "server.cors_origins",
	"rate_limit_enabled":   "server.rate_limit_enabled",
	"rate_limit_requests":  "server.rate_limit_requests",
	"rate_limit_window":    "server.rate_limit_window",
	"log_level":            "logging.level",
	"log_format":           "logging.format",
	"log_caller":           "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are ignored by the provider.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
