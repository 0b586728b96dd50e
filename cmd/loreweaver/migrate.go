package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"loreweaver/internal/store/sqlstore"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *sqlstore.Migrator) error {
				n, err := m.Up(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "Applied %d migration(s).\n", n)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *sqlstore.Migrator) error {
				rolledBack, err := m.Down(ctx)
				if err != nil {
					return err
				}
				if !rolledBack {
					fmt.Fprintln(os.Stdout, "Nothing to roll back.")
					return nil
				}
				fmt.Fprintln(os.Stdout, "Rolled back one migration.")
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *sqlstore.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
				for _, s := range statuses {
					applied := "pending"
					if s.Applied {
						applied = s.AppliedAt.Format(time.RFC3339)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, s.Name, applied)
				}
				return w.Flush()
			})
		},
	})
	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(ctx context.Context, m *sqlstore.Migrator) error) error {
	ctx := cmd.Context()

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	db, err := openEngine(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	m, err := newMigrator(cfg, db)
	if err != nil {
		return err
	}
	return fn(ctx, m)
}
