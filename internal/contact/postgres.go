package contact

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps contacts in PostgreSQL.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore creates a store on db.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	insertContact = `INSERT INTO emails (email, name) VALUES ($1, $2) RETURNING id`
	updateContact = `UPDATE emails SET email = $1, name = $2 WHERE email = $3`
	deleteContact = `DELETE FROM emails WHERE email = $1`
	listContacts  = `SELECT id, COALESCE(email, ''), COALESCE(name, '') FROM emails ORDER BY id`
	getContact    = `SELECT id, COALESCE(email, ''), COALESCE(name, '') FROM emails WHERE id = $1`
)

func (s *PostgresStore) Add(ctx context.Context, email, name string) (Contact, error) {
	c := Contact{Email: email, Name: name}
	if err := s.db.QueryRow(ctx, insertContact, email, name).Scan(&c.ID); err != nil {
		return Contact{}, storeError("add", err)
	}
	return c, nil
}

func (s *PostgresStore) Edit(ctx context.Context, oldEmail, newEmail, name string) error {
	if _, err := s.db.Exec(ctx, updateContact, newEmail, name, oldEmail); err != nil {
		return storeError("edit", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, email string) error {
	if _, err := s.db.Exec(ctx, deleteContact, email); err != nil {
		return storeError("remove", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Contact, error) {
	rows, err := s.db.Query(ctx, listContacts)
	if err != nil {
		return nil, storeError("list", err)
	}

	contacts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Contact, error) {
		var c Contact
		err := row.Scan(&c.ID, &c.Email, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, storeError("list", err)
	}
	if contacts == nil {
		contacts = []Contact{}
	}
	return contacts, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (Contact, error) {
	var c Contact
	err := s.db.QueryRow(ctx, getContact, id).Scan(&c.ID, &c.Email, &c.Name)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return Contact{}, ErrNotFound
	case err != nil:
		return Contact{}, storeError("get", err)
	}
	return c, nil
}
