// Package db holds the PostgreSQL plumbing: a pgx connection pool with startup
// retries, goose migrations run over the same pool, a readiness probe and a
// transaction helper.
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, migrationsFS, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
// Errors are sentinel values joined with their cause via [errors.Join].
package db
