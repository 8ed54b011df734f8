package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailcast"
	"github.com/dmitrymomot/mailcast/internal/config"
	"github.com/dmitrymomot/mailcast/internal/handlers"
	"github.com/dmitrymomot/mailcast/internal/metrics"
	"github.com/dmitrymomot/mailcast/internal/notify"
	"github.com/dmitrymomot/mailcast/middlewares"
	"github.com/dmitrymomot/mailcast/pkg/db"
	"github.com/dmitrymomot/mailcast/pkg/logger"
	"github.com/dmitrymomot/mailcast/pkg/mailer"
)

const sentryFlushTimeout = 2 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, opts)
		},
	}
}

func serve(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	cfg, log, err := load(opts)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMailNotConfigured) {
			return misconfigured(log, err)
		}
		return err
	}

	sender, err := newSender(ctx, cfg.Mail, log)
	if err != nil {
		return err
	}

	store, pool, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	notifierOpts := []notify.Option{
		notify.WithTemplate(cfg.Mailer.Template),
		notify.WithLogger(log),
	}
	middleware := []mailcast.Middleware{
		middlewares.CORS(middlewares.WithAllowOrigins(cfg.Server.CORSAllowedOrigins...)),
		middlewares.RequestID(),
	}
	appOpts := []mailcast.Option{
		mailcast.WithLogger(log),
		mailcast.WithErrorHandler(handlers.ErrorHandler),
		mailcast.WithNotFoundHandler(handlers.NotFound),
		mailcast.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
	}

	if cfg.Metrics.Enabled {
		m, err := metrics.New()
		if err != nil {
			return err
		}
		notifierOpts = append(notifierOpts, notify.WithRecorder(m))
		middleware = append(middleware, middlewares.Metrics(m))
		appOpts = append(appOpts, mailcast.WithMount(cfg.Metrics.Path, m.Handler()))
	}
	middleware = append(middleware, middlewares.Recover())

	renderer := mailer.NewRenderer(cfg.Mailer.TemplatesFS())
	notifier := notify.New(store, renderer, sender, notifierOpts...)

	healthOpts := []mailcast.HealthOption{}
	runOpts := []mailcast.RunOption{
		mailcast.WithContext(ctx),
		mailcast.ReadHeaderTimeout(cfg.Server.ReadHeaderTimeout),
		mailcast.ShutdownTimeout(cfg.Server.ShutdownTimeout),
		mailcast.WriteTimeout(cfg.Server.WriteTimeout),
	}
	if pool != nil {
		healthOpts = append(healthOpts, mailcast.WithReadinessCheck("postgres", db.Healthcheck(pool)))
		runOpts = append(runOpts, mailcast.ShutdownHook(db.Shutdown(pool)))
	}
	runOpts = append(runOpts, mailcast.ShutdownHook(logger.Flush(sentryFlushTimeout)))

	appOpts = append(appOpts,
		mailcast.WithMiddleware(middleware...),
		mailcast.WithHealthChecks(healthOpts...),
		mailcast.WithHandlers(
			handlers.NewContacts(store),
			handlers.NewBroadcasts(notifier),
		),
	)

	app := mailcast.New(appOpts...)

	log.Info("mailcast starting",
		slog.String("addr", cfg.Server.Addr),
		slog.String("driver", cfg.Database.Driver),
		slog.String("mail_provider", cfg.Mail.Provider),
	)
	return app.Run(cfg.Server.Addr, runOpts...)
}
