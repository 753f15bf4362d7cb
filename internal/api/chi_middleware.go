// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package api

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/soundalike/internal/config"
	"github.com/tomtom215/soundalike/internal/logging"
)

// ChiMiddlewareConfig holds configuration for Chi middleware factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// DefaultChiMiddlewareConfig returns the configuration used when none is given.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "If-None-Match", "X-Request-ID"},
		CORSMaxAge:         86400,

		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

// ChiMiddlewareConfigFromServer builds the middleware configuration from
// the server section of the application config.
func ChiMiddlewareConfigFromServer(cfg config.ServerConfig) *ChiMiddlewareConfig {
	mc := DefaultChiMiddlewareConfig()
	mc.CORSAllowedOrigins = cfg.CORSOrigins
	mc.RateLimitRequests = cfg.RateLimitRequests
	mc.RateLimitWindow = cfg.RateLimitWindow
	mc.RateLimitDisabled = !cfg.RateLimitEnabled
	return mc
}

// ChiMiddleware provides Chi-compatible middleware factories.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a new Chi middleware factory with the given configuration.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	return &ChiMiddleware{
		config: config,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: config.CORSAllowedOrigins,
			AllowedMethods: config.CORSAllowedMethods,
			AllowedHeaders: config.CORSAllowedHeaders,
			ExposedHeaders: []string{"ETag", "X-Request-ID"},
			MaxAge:         config.CORSMaxAge,
		}),
	}
}

// CORS returns the go-chi/cors middleware.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns a per-IP rate limiter, or a no-op when disabled.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled || m.config.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		m.config.RateLimitRequests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, CodeRateLimitExceeded, "Too many requests", nil, nil)
		}),
	)
}

// RequestIDWithLogging adds a request ID and a correlation ID to the context
// and response, and stores the http component logger that logging.Ctx
// decorates with both. An inbound X-Correlation-ID is kept so a caller can
// follow one operation across services.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
				r.Header.Set("X-Request-ID", requestID)
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			if id := correlationIDHeader(r); id != "" {
				ctx = logging.ContextWithCorrelationID(ctx, id)
			} else {
				ctx = logging.ContextWithNewCorrelationID(ctx)
			}
			w.Header().Set("X-Correlation-ID", logging.CorrelationIDFromContext(ctx))
			ctx = logging.ContextWithLogger(ctx, logging.WithComponent("http"))

			chiRequestID.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessLog logs one line per request through the request scoped logger, so
// each line carries the request and correlation IDs. Client errors log at
// warn and server errors at error; everything else logs at debug.
func AccessLog() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			switch status := ww.Status(); {
			case status >= http.StatusInternalServerError:
				event = logger.Error()
			case status >= http.StatusBadRequest:
				event = logger.Warn()
			}
			event.
				Str("method", r.Method).
				Str("path", sanitizeLogValue(r.URL.Path)).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	}
}

// maxCorrelationIDLength bounds inbound correlation IDs; longer ones are replaced.
const maxCorrelationIDLength = 64

// correlationIDHeader returns the sanitized inbound X-Correlation-ID, or "".
func correlationIDHeader(r *http.Request) string {
	id := r.Header.Get("X-Correlation-ID")
	if len(id) > maxCorrelationIDLength {
		return ""
	}
	return sanitizeLogValue(id)
}
