// Package logger builds the service's structured loggers on top of log/slog.
//
// Every logger writes JSON to stdout (or any io.Writer passed in Config) and runs
// records through a LogHandlerDecorator, which appends attributes pulled from the
// record's context. The HTTP layer uses this to stamp request_id on every entry
// written while a request is in flight:
//
//	log := logger.New(logger.Config{Level: "debug"}, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "contact added", slog.String("email", email))
//	// {"level":"INFO","msg":"contact added","email":"...","request_id":"..."}
//
// When Config.SentryDSN is set, warnings and errors are also forwarded to Sentry.
// Errors become Sentry issues, warnings are kept as breadcrumbs-style logs. An
// empty DSN, or a failed Sentry init, falls back to stdout only, so the same code
// path runs in development and production.
package logger
