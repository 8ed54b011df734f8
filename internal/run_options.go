package internal

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// RunOption configures the server runtime.
type RunOption func(*runConfig)

type runConfig struct {
	logger            *slog.Logger
	baseCtx           context.Context
	listener          net.Listener
	shutdownHooks     []func(context.Context) error
	shutdownTimeout   time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
}

func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{
		shutdownTimeout:   defaultShutdownTimeout,
		readHeaderTimeout: defaultReadHeaderTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Logger sets the logger for server lifecycle events.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds the graceful shutdown, hooks included. Defaults to 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// ReadHeaderTimeout sets http.Server.ReadHeaderTimeout. Defaults to 5s.
func ReadHeaderTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.readHeaderTimeout = d
		}
	}
}

// WriteTimeout sets http.Server.WriteTimeout. Zero, the default, leaves
// responses unbounded so long bulk sends still reach the client.
func WriteTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d >= 0 {
			c.writeTimeout = d
		}
	}
}

// ShutdownHook registers a cleanup function run after the server stops,
// in registration order.
//
//	mailcast.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets the parent context; canceling it shuts the server down.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}

// Listener serves on an existing listener instead of binding the address.
func Listener(ln net.Listener) RunOption {
	return func(c *runConfig) {
		c.listener = ln
	}
}
