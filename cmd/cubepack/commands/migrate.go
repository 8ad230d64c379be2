package commands

import (
	"errors"
	"fmt"

	"github.com/piwi3910/cubepack/internal/store"
	"github.com/spf13/cobra"
)

func (a *app) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the run history database schema",
	}
	cmd.PersistentFlags().String("db", "cubepack.db", "sqlite database")

	run := func(fn func(db *store.DB, cmd *cobra.Command) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if a.cfg.Database == "" {
				return errors.New("no database configured")
			}
			db, err := store.Open(a.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			return fn(db, cmd)
		}
	}

	version := func(db *store.DB, cmd *cobra.Command) error {
		v, dirty, err := db.MigrateVersion()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(db *store.DB, cmd *cobra.Command) error {
				if err := db.MigrateUp(); err != nil {
					return err
				}
				return version(db, cmd)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(db *store.DB, cmd *cobra.Command) error {
				if err := db.MigrateDown(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "all migrations reverted")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE:  run(version),
		},
	)
	return cmd
}
