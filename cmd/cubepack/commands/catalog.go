package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/cubepack/internal/model"
	"github.com/piwi3910/cubepack/internal/project"
	"github.com/spf13/cobra"
)

func (a *app) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage container presets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List container presets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cat, err := project.LoadCatalog(a.catalogFile)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tW x H x D\t")
				for _, c := range cat.Containers {
					fmt.Fprintf(tw, "%s\t%s\t%g x %g x %g\t\n", c.ID, c.Name, c.Width, c.Height, c.Depth)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:     "add NAME WxHxD",
			Short:   "Add a container preset",
			Example: `  cubepack catalog add "Crate L" 120x100x80`,
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				w, h, d, err := parseDims(args[1])
				if err != nil {
					return err
				}
				cat, err := project.LoadCatalog(a.catalogFile)
				if err != nil {
					return err
				}
				if cat.FindByName(args[0]) != nil {
					return fmt.Errorf("container %q already exists", args[0])
				}
				preset := model.NewContainerPreset(args[0], w, h, d)
				cat.Containers = append(cat.Containers, preset)
				if err := project.SaveCatalog(a.catalogFile, cat); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", preset.Name, preset.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "import FILE.json",
			Short: "Merge presets from another catalog file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cat, err := project.LoadCatalog(a.catalogFile)
				if err != nil {
					return err
				}
				before := len(cat.Containers)
				cat, err = project.ImportCatalog(args[0], cat)
				if err != nil {
					return err
				}
				if err := project.SaveCatalog(a.catalogFile, cat); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d presets\n", len(cat.Containers)-before)
				return nil
			},
		},
	)
	return cmd
}
