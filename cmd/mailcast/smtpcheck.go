package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailcast/internal/config"
	"github.com/dmitrymomot/mailcast/pkg/mailer/smtp"
)

func newSMTPCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "smtp-check",
		Short: "Open and close one SMTP session with the configured credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load(opts)
			if err != nil {
				return err
			}

			mail := cfg.Mail
			mail.Provider = config.ProviderSMTP
			if err := mail.Validate(); err != nil {
				return misconfigured(log, err)
			}

			if err := smtp.New(mail.SMTP, smtp.WithLogger(log)).Verify(cmd.Context()); err != nil {
				return misconfigured(log, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "smtp ok: %s:%d as %s\n", mail.SMTP.Host, mail.SMTP.Port, mail.SMTP.SenderEmail)
			return nil
		},
	}
}
