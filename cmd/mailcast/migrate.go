package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailcast/internal/contact"
	"github.com/dmitrymomot/mailcast/pkg/db"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			cfg, log, err := load(opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := connect(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			table := cfg.Database.MigrationsTable
			switch direction {
			case "up":
				return db.Migrate(ctx, pool, contact.Migrations(), table, log)
			case "down":
				return db.Rollback(ctx, pool, contact.Migrations(), table, log)
			case "status":
				return db.Status(ctx, pool, contact.Migrations(), table, log)
			default:
				return fmt.Errorf("unknown migration direction %q", direction)
			}
		},
	}
}
