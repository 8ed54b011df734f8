package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/mailcast/internal/config"
	"github.com/dmitrymomot/mailcast/internal/contact"
	"github.com/dmitrymomot/mailcast/middlewares"
	"github.com/dmitrymomot/mailcast/pkg/db"
	"github.com/dmitrymomot/mailcast/pkg/logger"
	"github.com/dmitrymomot/mailcast/pkg/mailer"
	"github.com/dmitrymomot/mailcast/pkg/mailer/resend"
	"github.com/dmitrymomot/mailcast/pkg/mailer/smtp"
)

func load(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.Log, middlewares.RequestIDExtractor()), nil
}

// misconfigured logs err and turns it into exit status 2.
func misconfigured(log *slog.Logger, err error) error {
	log.Error("mail is not properly configured", slog.String("error", err.Error()))
	return &exitError{code: exitMisconfigured, err: err}
}

// newSender builds the configured mail provider. SMTP credentials are
// probed with one handshake when cfg.VerifyOnStart is set.
func newSender(ctx context.Context, cfg config.Mail, log *slog.Logger) (mailer.Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, misconfigured(log, err)
	}

	switch cfg.Provider {
	case config.ProviderResend:
		return resend.New(cfg.Resend, resend.WithLogger(log)), nil
	default:
		s := smtp.New(cfg.SMTP, smtp.WithLogger(log))
		if cfg.VerifyOnStart {
			if err := s.Verify(ctx); err != nil {
				return nil, misconfigured(log, err)
			}
			log.Info("smtp credentials verified", slog.String("host", cfg.SMTP.Host))
		}
		return s, nil
	}
}

// openStore returns the contact store. The pool is nil for the memory driver.
func openStore(ctx context.Context, cfg config.Database, log *slog.Logger) (contact.Store, *pgxpool.Pool, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("using in-memory contact store, data is lost on restart")
		return contact.NewMemoryStore(), nil, nil
	}

	pool, err := connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, pool, contact.Migrations(), cfg.MigrationsTable, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return contact.NewPostgresStore(pool), pool, nil
}

func connect(ctx context.Context, cfg config.Database) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, config.ErrMissingDatabaseURL
	}
	return db.Connect(ctx, cfg.Config)
}
