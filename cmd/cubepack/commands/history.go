package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "List recorded runs, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			w := cmd.OutOrStdout()
			if len(args) == 1 {
				run, err := db.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(run)
			}

			runs, err := db.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tCREATED\tORDERS\tITEMS\tPACKED\tMEAN EFF\tQUOTE\t")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s/%s\t%d\t%d\t%.2f%%\t%.0f %s\t\n",
					r.RunID, time.Unix(0, r.CreatedAt).Format(time.RFC3339),
					r.CandidateOrder, r.ItemOrder, r.ItemCount, r.PackedCount,
					r.MeanEfficiency, r.QuotePrice, r.QuoteStatus)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("db", "cubepack.db", "sqlite database")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list, 0 for all")
	return cmd
}
