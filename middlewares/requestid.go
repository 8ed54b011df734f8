package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailcast/internal"
	"github.com/dmitrymomot/mailcast/pkg/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDOption configures the RequestID middleware.
type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	generate func() string
	trust    bool
}

// WithRequestIDGenerator replaces the uuid v4 generator.
func WithRequestIDGenerator(fn func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if fn != nil {
			cfg.generate = fn
		}
	}
}

// WithoutIncomingRequestID ignores ids supplied by the client.
func WithoutIncomingRequestID() RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.trust = false
	}
}

// RequestID reuses the incoming X-Request-ID or generates a new one,
// stores it in the request context and echoes it in the response.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{generate: uuid.NewString, trust: true}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := ""
			if cfg.trust {
				id = c.Header(RequestIDHeader)
			}
			if id == "" {
				id = cfg.generate()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(RequestIDHeader, id)
			return next(c)
		}
	}
}

// GetRequestID returns the request id stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds request_id to every log record written with the request context.
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := GetRequestID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
