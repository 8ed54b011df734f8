// Package contact stores the recipients of broadcast emails.
//
// Rows live in the emails table. Edit and Remove match rows by email address,
// which is not unique: every row sharing the address is affected.
package contact

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by GetByID when no row has the id.
	ErrNotFound = errors.New("contact: not found")

	// ErrStore wraps every failure of the underlying storage.
	ErrStore = errors.New("contact: store failure")
)

// Contact is one row of the emails table.
type Contact struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Store is the contact persistence contract.
type Store interface {
	// Add inserts a contact and returns it with its assigned id.
	Add(ctx context.Context, email, name string) (Contact, error)
	// Edit rewrites every row whose email equals oldEmail. No match is not an error.
	Edit(ctx context.Context, oldEmail, newEmail, name string) error
	// Remove deletes every row whose email equals email. No match is not an error.
	Remove(ctx context.Context, email string) error
	// List returns all rows ordered by id; never nil.
	List(ctx context.Context) ([]Contact, error)
	// GetByID returns ErrNotFound when the id is unknown.
	GetByID(ctx context.Context, id int64) (Contact, error)
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
