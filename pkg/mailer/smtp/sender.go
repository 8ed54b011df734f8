// Package smtp delivers mailer emails over SMTP using go-mail.
//
// Every call to [Sender.Send] opens its own session (dial, EHLO, AUTH), sends a
// single message and quits. Sessions are never shared between messages.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/textproto"

	"github.com/go-mail/mail"

	"github.com/dmitrymomot/mailcast/pkg/logger"
	"github.com/dmitrymomot/mailcast/pkg/mailer"
)

// Dialer opens an authenticated SMTP connection. *mail.Dialer implements it.
type Dialer interface {
	Dial() (mail.SendCloser, error)
}

// Sender implements mailer.Sender over SMTP.
type Sender struct {
	cfg    Config
	dialer Dialer
	log    *slog.Logger
}

// Option configures a Sender.
type Option func(*Sender)

// WithDialer replaces the go-mail dialer built from Config.
func WithDialer(d Dialer) Option {
	return func(s *Sender) { s.dialer = d }
}

// WithLogger sets the logger for session events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sender) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Sender from cfg.
func New(cfg Config, opts ...Option) *Sender {
	s := &Sender{
		cfg:    cfg,
		dialer: newDialer(cfg),
		log:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newDialer(cfg Config) *mail.Dialer {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.username(), cfg.Password)
	d.Timeout = cfg.Timeout
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in for local relays
	}

	switch cfg.TLSMode {
	case TLSModeStartTLS:
		d.SSL = false
		d.StartTLSPolicy = mail.MandatoryStartTLS
	case TLSModeNone:
		d.SSL = false
		d.StartTLSPolicy = mail.NoStartTLS
	default:
		d.SSL = true
	}
	return d
}

// From returns the header sender address, including the display name when set.
func (s *Sender) From() string {
	return mailer.Recipient(s.cfg.SenderName, s.cfg.SenderEmail)
}

// Open dials the server and authenticates.
func (s *Sender) Open(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDial, err)
	}

	type result struct {
		sc  mail.SendCloser
		err error
	}
	ch := make(chan result, 1)
	go func() {
		sc, err := s.dialer.Dial()
		ch <- result{sc: sc, err: err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.sc != nil {
				_ = r.sc.Close()
			}
		}()
		return nil, fmt.Errorf("%w: %w", ErrDial, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			if isAuthError(r.err) {
				return nil, fmt.Errorf("%w: %w: %w", ErrDial, mailer.ErrAuth, r.err)
			}
			return nil, fmt.Errorf("%w: %w", ErrDial, r.err)
		}
		s.log.DebugContext(ctx, "smtp session opened",
			slog.String("host", s.cfg.Host),
			slog.Int("port", s.cfg.Port),
		)
		return &Session{sc: r.sc}, nil
	}
}

// Send opens a session, sends email and closes the session.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if len(email.To) == 0 {
		return mailer.ErrNoRecipient
	}

	from := email.From
	if from == "" {
		from = s.From()
	}
	msg := BuildMessage(email.Subject, email.To, from, email.HTML, email.Text)
	if email.ReplyTo != "" {
		msg.SetHeader("Reply-To", email.ReplyTo)
	}
	for k, v := range email.Headers {
		msg.SetHeader(k, v)
	}

	session, err := s.Open(ctx)
	if err != nil {
		return err
	}

	if err := session.Send(s.cfg.SenderEmail, email.To, msg); err != nil {
		_ = session.Close()
		return err
	}
	if err := session.Close(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "email sent", slog.Any("to", email.To))
	return nil
}

// Verify opens and immediately closes a session to check host and credentials.
func (s *Sender) Verify(ctx context.Context) error {
	session, err := s.Open(ctx)
	if err != nil {
		return err
	}
	return session.Close()
}

// isAuthError reports whether err is an SMTP AUTH rejection (RFC 4954).
func isAuthError(err error) bool {
	var tpErr *textproto.Error
	if !errors.As(err, &tpErr) {
		return false
	}
	switch tpErr.Code {
	case 530, 534, 535:
		return true
	}
	return false
}

// Session is one authenticated SMTP connection.
type Session struct {
	sc mail.SendCloser
}

// Send transmits msg with the given envelope sender and recipients.
func (s *Session) Send(from string, to []string, msg *mail.Message) error {
	if err := s.sc.Send(from, to, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	return nil
}

// Close sends QUIT and closes the connection.
func (s *Session) Close() error {
	if err := s.sc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrClose, err)
	}
	return nil
}

// BuildMessage assembles a message with Subject, From and To headers.
// A non-empty text body turns it into multipart/alternative with HTML preferred.
func BuildMessage(subject string, to []string, from, html, text string) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("Subject", subject)
	m.SetHeader("From", from)
	m.SetHeader("To", to...)

	if text != "" {
		m.SetBody("text/plain", text)
		m.AddAlternative("text/html", html)
	} else {
		m.SetBody("text/html", html)
	}
	return m
}
