// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/soundalike/internal/validation"
)

// Validate checks struct tags and cross-field constraints.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateServer()
}

// validateSources requires at least one dataset to serve.
func (c *Config) validateSources() error {
	if c.Dataset.Path == "" && c.History.Path == "" {
		return errors.New("at least one of DATASET_PATH or HISTORY_PATH must be set")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultK > c.Recommend.MaxK {
		return fmt.Errorf("DEFAULT_K (%d) must not exceed MAX_K (%d)", c.Recommend.DefaultK, c.Recommend.MaxK)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.WatchDebounce < 0 {
		return fmt.Errorf("CACHE_WATCH_DEBOUNCE must not be negative, got %s", c.Cache.WatchDebounce)
	}
	if c.Cache.PollInterval < 0 {
		return fmt.Errorf("CACHE_POLL_INTERVAL must not be negative, got %s", c.Cache.PollInterval)
	}
	if c.Cache.ResultCacheSize > 0 && c.Cache.ResultCacheTTL <= 0 {
		return errors.New("RESULT_CACHE_TTL must be positive when the result cache is enabled")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Server.RefreshTimeout < 0 {
		return fmt.Errorf("REFRESH_TIMEOUT must not be negative, got %s", c.Server.RefreshTimeout)
	}
	if c.Server.RateLimitEnabled && (c.Server.RateLimitRequests <= 0 || c.Server.RateLimitWindow <= 0) {
		return errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
