package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/mailcast/pkg/logger"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
	defaultAddress           = ":8080"
)

type runtimeConfig struct {
	handler http.Handler
	address string
	*runConfig
}

// runServer serves until SIGINT, SIGTERM or the base context ends, then
// drains in-flight requests and runs the shutdown hooks in order.
func runServer(cfg runtimeConfig) error {
	log := cfg.logger
	if log == nil {
		log = logger.NewNope()
	}
	if cfg.address == "" {
		cfg.address = defaultAddress
	}

	srv := &http.Server{
		Addr:              cfg.address,
		Handler:           cfg.handler,
		ReadTimeout:       defaultReadTimeout,
		ReadHeaderTimeout: cfg.readHeaderTimeout,
		WriteTimeout:      cfg.writeTimeout,
		IdleTimeout:       defaultIdleTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	ln := cfg.listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", srv.Addr); err != nil {
			return err
		}
	}

	parent := cfg.baseCtx
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("address", ln.Addr().String()))
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	return shutdown(srv, cfg.runConfig, log)
}

func shutdown(srv *http.Server, cfg *runConfig, log *slog.Logger) error {
	log.Info("shutting down", slog.Duration("timeout", cfg.shutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(ctx)
	for _, hook := range cfg.shutdownHooks {
		if hookErr := hook(ctx); hookErr != nil {
			log.Error("shutdown hook failed", slog.String("error", hookErr.Error()))
			err = errors.Join(err, hookErr)
		}
	}

	if err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
