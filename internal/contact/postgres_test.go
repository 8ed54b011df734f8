//go:build integration

package contact_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailcast/internal/contact"
	"github.com/dmitrymomot/mailcast/pkg/db"
	"github.com/dmitrymomot/mailcast/pkg/logger"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{URL: url, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool, contact.Migrations(), "schema_migrations", logger.NewNope()))
	return pool
}

// inTx runs fn in a transaction that is always rolled back.
func inTx(t *testing.T, pool *pgxpool.Pool, fn func(tx pgx.Tx)) {
	t.Helper()

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, "DELETE FROM emails")
	require.NoError(t, err)
	fn(tx)
}

func TestPostgresStore(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()

	t.Run("crud", func(t *testing.T) {
		inTx(t, pool, func(tx pgx.Tx) {
			s := contact.NewPostgresStore(tx)

			list, err := s.List(ctx)
			require.NoError(t, err)
			require.NotNil(t, list)
			require.Empty(t, list)

			a, err := s.Add(ctx, "a@example.com", "A")
			require.NoError(t, err)
			require.NotZero(t, a.ID)

			require.NoError(t, s.Edit(ctx, "a@example.com", "b@example.com", "B"))
			got, err := s.GetByID(ctx, a.ID)
			require.NoError(t, err)
			require.Equal(t, contact.Contact{ID: a.ID, Email: "b@example.com", Name: "B"}, got)

			require.NoError(t, s.Edit(ctx, "missing@example.com", "x@example.com", "X"))
			require.NoError(t, s.Remove(ctx, "b@example.com"))

			_, err = s.GetByID(ctx, a.ID)
			require.ErrorIs(t, err, contact.ErrNotFound)
		})
	})

	t.Run("null columns read as empty", func(t *testing.T) {
		inTx(t, pool, func(tx pgx.Tx) {
			var id int64
			require.NoError(t, tx.QueryRow(ctx, "INSERT INTO emails (email, name) VALUES ('n@example.com', NULL) RETURNING id").Scan(&id))

			got, err := contact.NewPostgresStore(tx).GetByID(ctx, id)
			require.NoError(t, err)
			require.Equal(t, "n@example.com", got.Email)
			require.Empty(t, got.Name)
		})
	})

	t.Run("with tx helper commits", func(t *testing.T) {
		var added contact.Contact
		err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
			var err error
			added, err = contact.NewPostgresStore(tx).Add(ctx, "tx@example.com", "Tx")
			return err
		})
		require.NoError(t, err)
		t.Cleanup(func() { _, _ = pool.Exec(ctx, "DELETE FROM emails WHERE id = $1", added.ID) })

		got, err := contact.NewPostgresStore(pool).GetByID(ctx, added.ID)
		require.NoError(t, err)
		require.Equal(t, "Tx", got.Name)
	})
}
