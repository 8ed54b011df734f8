package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies every pending migration found at the root of migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, table string, log *slog.Logger) error {
	sqlDB, err := prepareGoose(pool, migrations, table, log)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	return nil
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, table string, log *slog.Logger) error {
	sqlDB, err := prepareGoose(pool, migrations, table, log)
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, "."); err != nil {
		return errors.Join(ErrRollbackMigration, err)
	}
	return nil
}

// Status logs the applied state of every known migration.
func Status(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, table string, log *slog.Logger) error {
	sqlDB, err := prepareGoose(pool, migrations, table, log)
	if err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, sqlDB, "."); err != nil {
		return errors.Join(ErrMigrationStatus, err)
	}
	return nil
}

// The returned *sql.DB shares the pool's connections and must not be closed.
func prepareGoose(pool *pgxpool.Pool, migrations fs.FS, table string, log *slog.Logger) (*sql.DB, error) {
	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{log: log})
	if table != "" {
		goose.SetTableName(table)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, errors.Join(ErrSetDialect, err)
	}
	return stdlib.OpenDBFromPool(pool), nil
}

type gooseLogger struct {
	log *slog.Logger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...), slog.String("component", "migrator"))
}

// Fatalf does not exit; goose returns the error to the caller as well.
func (g *gooseLogger) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...), slog.String("component", "migrator"))
}
