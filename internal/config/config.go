// Package config loads service settings from an optional YAML file, a .env
// file and the process environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailcast/pkg/db"
	"github.com/dmitrymomot/mailcast/pkg/logger"
	"github.com/dmitrymomot/mailcast/pkg/mailer"
	"github.com/dmitrymomot/mailcast/pkg/mailer/resend"
	"github.com/dmitrymomot/mailcast/pkg/mailer/smtp"
)

// PathEnv names the variable holding the config file path when no flag is given.
const PathEnv = "MAILCAST_CONFIG"

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

// Config is the complete service configuration.
type Config struct {
	Server   Server        `yaml:"server"`
	Database Database      `yaml:"database"`
	Mail     Mail          `yaml:"mail"`
	Mailer   mailer.Config `yaml:"mailer"`
	Log      logger.Config `yaml:"log"`
	Metrics  Metrics       `yaml:"metrics"`
}

type Server struct {
	Addr              string        `yaml:"addr" env:"SERVER_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SERVER_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// Zero disables the write deadline.
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" envDefault:"0s"`

	// "*" allows any origin.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

type Database struct {
	Driver      string `yaml:"driver" env:"DATABASE_DRIVER" envDefault:"postgres"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DATABASE_AUTO_MIGRATE" envDefault:"true"`

	db.Config `yaml:",inline"`
}

type Mail struct {
	Provider      string `yaml:"provider" env:"MAIL_PROVIDER" envDefault:"smtp"`
	VerifyOnStart bool   `yaml:"verify_on_start" env:"SMTP_VERIFY_ON_START" envDefault:"true"`

	SMTP   smtp.Config   `yaml:"smtp"`
	Resend resend.Config `yaml:"resend"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `yaml:"path" env:"METRICS_PATH" envDefault:"/metrics"`
}

// Load builds a Config. An empty path falls back to $MAILCAST_CONFIG; when
// both are empty only defaults, .env and the environment are used.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %w", ErrLoad, err)
	}

	var cfg Config

	// Defaults only; the real environment is applied last.
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		return nil, fmt.Errorf("%w: defaults: %w", ErrLoad, err)
	}

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
		}
	}

	// An unknown default tag name disables defaults so file values survive.
	if err := env.ParseWithOptions(&cfg, env.Options{DefaultValueTagName: "envNoDefault"}); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoad, err)
	}

	return &cfg, nil
}
