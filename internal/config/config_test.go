package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailcast/internal/config"
	"github.com/dmitrymomot/mailcast/pkg/mailer/resend"
	"github.com/dmitrymomot/mailcast/pkg/mailer/smtp"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mailcast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.PathEnv, "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	require.Zero(t, cfg.Server.WriteTimeout)
	require.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	require.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	require.True(t, cfg.Database.AutoMigrate)
	require.Equal(t, "schema_migrations", cfg.Database.MigrationsTable)
	require.Equal(t, config.ProviderSMTP, cfg.Mail.Provider)
	require.True(t, cfg.Mail.VerifyOnStart)
	require.Equal(t, 465, cfg.Mail.SMTP.Port)
	require.Equal(t, smtp.TLSModeSSL, cfg.Mail.SMTP.TLSMode)
	require.Equal(t, 10*time.Second, cfg.Mail.SMTP.Timeout)
	require.Equal(t, "email_template", cfg.Mailer.Template)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ":9000"
  cors_allowed_origins: ["https://app.example.com"]
database:
  driver: memory
  auto_migrate: false
mail:
  verify_on_start: false
  smtp:
    host: smtp.file.example.com
    port: 587
    tls_mode: starttls
    sender_email: file@example.com
metrics:
  enabled: false
`)
	t.Setenv("SMTP_HOST", "smtp.env.example.com")
	t.Setenv("SMTP_PASSWORD", "from-env")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, ":9000", cfg.Server.Addr)
	require.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
	require.Equal(t, config.DriverMemory, cfg.Database.Driver)
	require.False(t, cfg.Database.AutoMigrate)
	require.False(t, cfg.Mail.VerifyOnStart)
	require.False(t, cfg.Metrics.Enabled)

	require.Equal(t, "smtp.env.example.com", cfg.Mail.SMTP.Host)
	require.Equal(t, "from-env", cfg.Mail.SMTP.Password)
	require.Equal(t, 587, cfg.Mail.SMTP.Port)
	require.Equal(t, smtp.TLSModeStartTLS, cfg.Mail.SMTP.TLSMode)
	require.Equal(t, "file@example.com", cfg.Mail.SMTP.SenderEmail)
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := writeFile(t, "server:\n  addr: \":7000\"\n")
	t.Setenv(config.PathEnv, path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, config.ErrLoad)

	_, err = config.Load(writeFile(t, "server: [not, a, map"))
	require.ErrorIs(t, err, config.ErrLoad)
}

func validConfig() config.Config {
	return config.Config{
		Server:   config.Server{Addr: ":8080"},
		Database: config.Database{Driver: config.DriverMemory},
		Mail: config.Mail{
			Provider: config.ProviderSMTP,
			SMTP: smtp.Config{
				Host:        "smtp.example.com",
				Port:        465,
				Password:    "secret",
				SenderEmail: "news@example.com",
				TLSMode:     smtp.TLSModeSSL,
			},
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("reports every missing smtp field", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Mail.SMTP = smtp.Config{}

		err := cfg.Validate()
		require.ErrorIs(t, err, config.ErrMailNotConfigured)
		require.ErrorIs(t, err, smtp.ErrMissingHost)
		require.ErrorIs(t, err, smtp.ErrMissingPort)
		require.ErrorIs(t, err, smtp.ErrMissingSender)
		require.ErrorIs(t, err, smtp.ErrMissingPassword)
	})

	t.Run("resend provider", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Mail.Provider = config.ProviderResend
		require.ErrorIs(t, cfg.Validate(), resend.ErrMissingAPIKey)

		cfg.Mail.Resend = resend.Config{APIKey: "re_123", SenderEmail: "news@example.com"}
		require.NoError(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Mail.Provider = "carrier-pigeon"
		err := cfg.Validate()
		require.ErrorIs(t, err, config.ErrMailNotConfigured)
		require.ErrorIs(t, err, config.ErrUnknownMailProvider)
	})

	t.Run("postgres needs url", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Database.Driver = config.DriverPostgres
		err := cfg.Validate()
		require.ErrorIs(t, err, config.ErrMissingDatabaseURL)
		require.NotErrorIs(t, err, config.ErrMailNotConfigured)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Database.Driver = "mysql"
		require.ErrorIs(t, cfg.Validate(), config.ErrUnknownDriver)
	})
}
