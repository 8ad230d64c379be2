package commands

import (
	"errors"

	"github.com/piwi3910/cubepack/internal/project"
	"github.com/spf13/cobra"
)

func (a *app) newExportCmd() *cobra.Command {
	var files outputs

	cmd := &cobra.Command{
		Use:   "export RESULT.json",
		Short: "Export a saved result as PDF or Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if files == (outputs{}) {
				return errors.New("nothing to export: use --pdf, --labels or --xlsx")
			}
			rf, err := project.LoadResult(args[0])
			if err != nil {
				return err
			}
			a.rememberFile(args[0])
			return files.write(cmd.OutOrStdout(), rf.Result, rf.Quote)
		},
	}
	files.register(cmd)
	return cmd
}
