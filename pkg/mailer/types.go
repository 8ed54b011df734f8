package mailer

import "fmt"

// Recipient formats a display name and address as "Name <email>".
// An empty name yields the bare address.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a message ready for delivery.
type Email struct {
	Headers map[string]string
	Subject string
	HTML    string
	Text    string // optional plain text alternative
	From    string // empty means the provider's configured sender
	ReplyTo string
	To      []string
}

// Validate reports the first missing required field.
func (e *Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return ErrNoRecipient
	case e.Subject == "":
		return ErrNoSubject
	case e.HTML == "":
		return ErrNoContent
	}
	return nil
}
