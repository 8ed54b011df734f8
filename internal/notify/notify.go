// Package notify sends one templated email to each selected contact.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailcast/internal/contact"
	"github.com/dmitrymomot/mailcast/pkg/logger"
	"github.com/dmitrymomot/mailcast/pkg/mailer"
)

// Delivery outcomes reported to a Recorder.
const (
	ResultSent    = "sent"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// SendError aborts a broadcast when delivery to Address fails.
type SendError struct {
	Address string
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("Failed to send email to %s: %v", e.Address, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// Recorder counts delivery outcomes.
type Recorder interface {
	EmailDelivery(result string)
}

// Broadcast is one bulk send request.
type Broadcast struct {
	Subject    string
	Content    string
	ContactIDs []int64
}

// Report summarizes a completed broadcast.
type Report struct {
	Sent    int
	Skipped int
}

// TemplateData is passed to the email template.
type TemplateData struct {
	Name    string
	Content string
	Subject string
	Year    int
}

// Notifier resolves contacts, renders the template and sends one email each.
type Notifier struct {
	store    contact.Store
	renderer *mailer.Renderer
	sender   mailer.Sender
	template string
	now      func() time.Time
	log      *slog.Logger
	recorder Recorder
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithTemplate selects the template name. Defaults to mailer.DefaultTemplate.
func WithTemplate(name string) Option {
	return func(n *Notifier) {
		if name != "" {
			n.template = name
		}
	}
}

// WithClock replaces time.Now, used for the template year.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// WithLogger sets the logger for skipped contacts and deliveries.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.log = l
		}
	}
}

// WithRecorder reports each delivery outcome to r.
func WithRecorder(r Recorder) Option {
	return func(n *Notifier) { n.recorder = r }
}

// New creates a Notifier.
func New(store contact.Store, renderer *mailer.Renderer, sender mailer.Sender, opts ...Option) *Notifier {
	n := &Notifier{
		store:    store,
		renderer: renderer,
		sender:   sender,
		template: mailer.DefaultTemplate,
		now:      time.Now,
		log:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Broadcast sends b to every contact in b.ContactIDs, in order.
//
// Unknown ids and contacts without an email or name are logged and skipped.
// The first delivery failure stops the batch and is returned as *SendError;
// emails already sent stay sent. Canceling ctx does not stop a started batch.
func (n *Notifier) Broadcast(ctx context.Context, b Broadcast) (Report, error) {
	ctx = context.WithoutCancel(ctx)
	var report Report

	for _, id := range b.ContactIDs {
		c, err := n.store.GetByID(ctx, id)
		if errors.Is(err, contact.ErrNotFound) {
			n.log.WarnContext(ctx, "no data found for contact", slog.Int64("contact_id", id))
			n.skip(&report)
			continue
		}
		if err != nil {
			return report, err
		}

		if c.Email == "" || c.Name == "" {
			n.log.WarnContext(ctx, "email or name not found for contact", slog.Int64("contact_id", id))
			n.skip(&report)
			continue
		}

		rendered, err := n.renderer.Render(n.template, TemplateData{
			Name:    c.Name,
			Content: b.Content,
			Subject: b.Subject,
			Year:    n.now().Year(),
		})
		if err != nil {
			return report, err
		}

		err = n.sender.Send(ctx, &mailer.Email{
			To:      []string{c.Email},
			Subject: b.Subject,
			HTML:    rendered.HTML,
			Text:    rendered.Text,
		})
		if err != nil {
			n.record(ResultFailed)
			if errors.Is(err, mailer.ErrAuth) {
				n.log.ErrorContext(ctx, "mail is not properly configured", slog.String("error", err.Error()))
			}
			return report, &SendError{Address: c.Email, Err: err}
		}

		report.Sent++
		n.record(ResultSent)
		n.log.InfoContext(ctx, "email sent", slog.String("to", c.Email), slog.Int64("contact_id", id))
	}

	return report, nil
}

func (n *Notifier) skip(r *Report) {
	r.Skipped++
	n.record(ResultSkipped)
}

func (n *Notifier) record(result string) {
	if n.recorder != nil {
		n.recorder.EmailDelivery(result)
	}
}
