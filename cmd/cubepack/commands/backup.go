package commands

import (
	"fmt"

	"github.com/piwi3910/cubepack/internal/project"
	"github.com/spf13/cobra"
)

func (a *app) newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up or restore the config file and catalog",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "export FILE.json",
			Short: "Write config and catalog to one file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := project.LoadAppConfig(a.cfgPath)
				if err != nil {
					return err
				}
				cat, err := project.LoadCatalog(a.catalogFile)
				if err != nil {
					return err
				}
				if err := project.ExportAllData(args[0], cfg, cat); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "import FILE.json",
			Short: "Restore config and catalog from a backup",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := project.ImportAllData(args[0])
				if err != nil {
					return err
				}
				if err := project.RestoreBackup(data, a.cfgPath, a.catalogFile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s and %s\n", a.cfgPath, a.catalogFile)
				return nil
			},
		},
	)
	return cmd
}
