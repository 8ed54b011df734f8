package config

import (
	"errors"
	"fmt"
)

// Validate checks every section and returns all problems joined.
// Mail problems are wrapped with ErrMailNotConfigured.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, ErrMissingServerAddr)
	}

	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, ErrMissingDatabaseURL)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver))
	}

	if err := c.Mail.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks the settings of the selected provider.
func (m Mail) Validate() error {
	var err error
	switch m.Provider {
	case ProviderSMTP:
		err = m.SMTP.Validate()
	case ProviderResend:
		err = m.Resend.Validate()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMailProvider, m.Provider)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMailNotConfigured, err)
	}
	return nil
}
