package resend

import "errors"

var (
	ErrMissingAPIKey = errors.New("resend: api key is not set")
	ErrMissingSender = errors.New("resend: sender email is not set")
)

// Config holds Resend API credentials and the default sender.
type Config struct {
	APIKey      string `yaml:"api_key" env:"RESEND_API_KEY"`
	SenderEmail string `yaml:"sender_email" env:"RESEND_FROM_EMAIL"`
	SenderName  string `yaml:"sender_name" env:"RESEND_FROM_NAME"`
}

// Validate reports every missing field.
func (c Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	if c.SenderEmail == "" {
		errs = append(errs, ErrMissingSender)
	}
	return errors.Join(errs...)
}
