package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Config holds logger settings.
// Embed this in the app config for env parsing with caarlos0/env.
type Config struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string `yaml:"level" env:"LOG_LEVEL" envDefault:"info"`

	SentryDSN         string `yaml:"sentry_dsn" env:"SENTRY_DSN"`
	SentryEnvironment string `yaml:"sentry_environment" env:"SENTRY_ENVIRONMENT" envDefault:"production"`

	// Output overrides stdout. Used by tests.
	Output io.Writer `yaml:"-" env:"-"`
}

// ParseLevel maps a textual level to slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
