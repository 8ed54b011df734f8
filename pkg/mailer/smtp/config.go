package smtp

import (
	"errors"
	"time"
)

const (
	TLSModeSSL      = "ssl"      // implicit TLS, usually port 465
	TLSModeStartTLS = "starttls" // plain connection upgraded with STARTTLS
	TLSModeNone     = "none"     // local relays only
)

// Config holds SMTP connection settings.
type Config struct {
	Host string `yaml:"host" env:"SMTP_HOST"`
	Port int    `yaml:"port" env:"SMTP_PORT" envDefault:"465"`

	// Username defaults to SenderEmail.
	Username    string `yaml:"username" env:"SMTP_USERNAME"`
	Password    string `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail string `yaml:"sender_email" env:"SMTP_SENDER_EMAIL"`
	SenderName  string `yaml:"sender_name" env:"SMTP_SENDER_NAME"`

	TLSMode            string        `yaml:"tls_mode" env:"SMTP_TLS_MODE" envDefault:"ssl"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify" env:"SMTP_INSECURE_SKIP_VERIFY"`
	Timeout            time.Duration `yaml:"timeout" env:"SMTP_TIMEOUT" envDefault:"10s"`
}

// Validate reports every missing or invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, ErrMissingHost)
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, ErrMissingPort)
	}
	if c.SenderEmail == "" {
		errs = append(errs, ErrMissingSender)
	}
	if c.Password == "" {
		errs = append(errs, ErrMissingPassword)
	}
	switch c.TLSMode {
	case "", TLSModeSSL, TLSModeStartTLS, TLSModeNone:
	default:
		errs = append(errs, ErrInvalidTLSMode)
	}
	return errors.Join(errs...)
}

func (c Config) username() string {
	if c.Username != "" {
		return c.Username
	}
	return c.SenderEmail
}
