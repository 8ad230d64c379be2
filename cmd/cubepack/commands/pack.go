package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/piwi3910/cubepack/internal/engine"
	"github.com/piwi3910/cubepack/internal/export"
	"github.com/piwi3910/cubepack/internal/model"
	"github.com/piwi3910/cubepack/internal/project"
	"github.com/piwi3910/cubepack/internal/store"
	"github.com/spf13/cobra"
)

// outputs names the optional export files of pack and export.
type outputs struct {
	pdf    string
	labels string
	xlsx   string
}

func (o *outputs) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.pdf, "pdf", "", "write a PDF packing manifest")
	cmd.Flags().StringVar(&o.labels, "labels", "", "write PDF item labels with QR codes")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "write an Excel manifest workbook")
}

func (o *outputs) write(w io.Writer, result model.PackingResult, quote model.StorageQuote) error {
	if o.pdf != "" {
		if err := export.ExportPDF(o.pdf, result, quote); err != nil {
			return fmt.Errorf("pdf: %w", err)
		}
		fmt.Fprintf(w, "Manifest: %s\n", o.pdf)
	}
	if o.labels != "" {
		if err := export.ExportLabels(o.labels, result); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
		fmt.Fprintf(w, "Labels:   %s\n", o.labels)
	}
	if o.xlsx != "" {
		if err := export.ExportExcel(o.xlsx, result); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		fmt.Fprintf(w, "Workbook: %s\n", o.xlsx)
	}
	return nil
}

func (a *app) newPackCmd() *cobra.Command {
	var (
		out    string
		record bool
		files  outputs
	)

	cmd := &cobra.Command{
		Use:   "pack REQUEST.json",
		Short: "Pack a request file",
		Long: `Pack the bins and items of a request file.

Without --out the result is written to stdout as JSON. Settings in the
request file apply unless overridden with --candidate-order or --item-order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := project.LoadRequest(args[0])
			if err != nil {
				return err
			}
			settings := a.requestSettings(cmd, req)

			result, err := engine.New(settings).Pack(req.Bins, req.Items)
			if err != nil {
				return err
			}
			quote := model.CalculateStorageQuote(result, a.cfg.QuoteRates())
			a.logger.Debug("packed", "request", args[0],
				"packed", result.PackedCount(), "unpacked", len(result.UnpackedItems))

			w := cmd.OutOrStdout()
			if out == "" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				if err := project.SaveResult(out, settings, result, quote); err != nil {
					return err
				}
				printSummary(w, result, quote)
				fmt.Fprintf(w, "Result:   %s\n", out)
			}

			if record {
				if err := a.recordRun(cmd, req, settings, result, quote); err != nil {
					return err
				}
			}

			a.rememberFile(args[0])
			if out == "" {
				w = cmd.ErrOrStderr()
			}
			return files.write(w, result, quote)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "write the result file here")
	f.String("candidate-order", "distance", "candidate order: distance, yzx, zyx")
	f.String("item-order", "volume", "item order: volume, input")
	f.String("db", "cubepack.db", "sqlite database used by --record")
	f.BoolVar(&record, "record", false, "record the run in the database")
	files.register(cmd)
	return cmd
}

// requestSettings resolves the policy for req: explicit flags, then the
// request file, then the configured defaults.
func (a *app) requestSettings(cmd *cobra.Command, req model.PackingRequest) model.PackSettings {
	settings := req.EffectiveSettings(a.cfg.Settings())
	if flagChanged(cmd, "candidate-order") {
		settings.CandidateOrder = a.cfg.CandidateOrder
	}
	if flagChanged(cmd, "item-order") {
		settings.ItemOrder = a.cfg.ItemOrder
	}
	return settings
}

func (a *app) recordRun(cmd *cobra.Command, req model.PackingRequest, settings model.PackSettings, result model.PackingResult, quote model.StorageQuote) error {
	db, err := a.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := store.NewRun(req, settings, result, quote)
	if err != nil {
		return err
	}
	if err := db.RecordRun(cmd.Context(), run); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Recorded run %s\n", run.RunID)
	return nil
}

func printSummary(w io.Writer, result model.PackingResult, quote model.StorageQuote) {
	s := model.Summarize(result)
	fmt.Fprintf(w, "Packed %d of %d items into %d of %d bins\n",
		s.PackedCount, s.TotalItems, s.BinsUsed, s.BinsAttempted)
	for _, b := range result.PackedBins {
		fmt.Fprintf(w, "  %-12s %3d items  %6.2f%%\n", b.BinID, len(b.Items), b.Efficiency)
	}
	if s.UnpackedCount > 0 {
		fmt.Fprintf(w, "  unpacked     %3d items\n", s.UnpackedCount)
	}
	fmt.Fprintf(w, "Quote: %.0f (%s, %.4f m3)\n", quote.Price, quote.Status, quote.PackedVolumeM3)
}
