package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/cubepack/internal/engine"
	"github.com/piwi3910/cubepack/internal/project"
	"github.com/spf13/cobra"
)

func (a *app) newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare REQUEST.json",
		Short: "Pack a request under every candidate and item order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := project.LoadRequest(args[0])
			if err != nil {
				return err
			}
			scenarios := engine.BuildDefaultScenarios(a.requestSettings(cmd, req))
			results, err := engine.CompareScenarios(scenarios, req.Bins, req.Items)
			if err != nil {
				return err
			}
			best := engine.Best(results)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tPACKED\tUNPACKED\tBINS USED\tEFFICIENCY\t")
			for i, r := range results {
				mark := ""
				if i == best {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f%%\t%s\n",
					r.Scenario.Name, r.PackedCount, r.UnpackedCount, r.BinsUsed,
					r.Summary.OverallEfficiency, mark)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("candidate-order", "distance", "baseline candidate order")
	cmd.Flags().String("item-order", "volume", "baseline item order")
	return cmd
}
