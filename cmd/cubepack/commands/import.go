package commands

import (
	"bytes"
	"errors"
	"io"
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/cubepack/internal/importer"
	"github.com/piwi3910/cubepack/internal/model"
	"github.com/piwi3910/cubepack/internal/project"
	"github.com/spf13/cobra"
)

func (a *app) newImportCmd() *cobra.Command {
	var (
		out       string
		binSpecs  []string
		container string
		count     int
	)

	cmd := &cobra.Command{
		Use:   "import ITEMS.(csv|xlsx|-)",
		Short: "Build a request file from an item list",
		Long: `Read items from a CSV or Excel sheet and write a request file.

A file name of "-" reads CSV from stdin. Bins are given with --bin WxHxD
(optionally ID=WxHxD, repeatable) or taken from the container catalog with
--container NAME and --count.`,
		Example: `  cubepack import items.csv --bin 120x100x80 --bin 60x60x60 -o request.json
  cubepack import items.xlsx --container "20ft Container" --count 2 -o request.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := readItems(cmd, args[0])
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			for _, w := range res.Warnings {
				fmt.Fprintln(stderr, "warning:", w)
			}
			for _, e := range res.Errors {
				fmt.Fprintln(stderr, "error:", e)
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%d import errors in %s", len(res.Errors), args[0])
			}

			var bins []model.Bin
			for _, spec := range binSpecs {
				b, err := parseBin(spec)
				if err != nil {
					return err
				}
				bins = append(bins, b)
			}
			if container != "" {
				cat, err := project.LoadCatalog(a.catalogFile)
				if err != nil {
					return err
				}
				preset := cat.FindByName(container)
				if preset == nil {
					preset = cat.FindByID(container)
				}
				if preset == nil {
					return fmt.Errorf("container %q not in catalog (have %s)",
					container, strings.Join(cat.Names(), ", "))
				}
				bins = append(bins, preset.ToBins(count)...)
			}
			if len(bins) == 0 {
				return errors.New("no bins given: use --bin or --container")
			}

			req := model.PackingRequest{Bins: bins, Items: res.Items}
			if err := project.SaveRequest(out, req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d items and %d bins to %s\n", len(req.Items), len(req.Bins), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "request.json", "request file to write")
	f.StringArrayVar(&binSpecs, "bin", nil, "bin dimensions WxHxD or ID=WxHxD")
	f.StringVar(&container, "container", "", "catalog container name or id")
	f.IntVar(&count, "count", 1, "number of catalog containers")
	return cmd
}

func readItems(cmd *cobra.Command, path string) (importer.ImportResult, error) {
	if path != "-" {
		return importer.ImportFile(path), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return importer.ImportResult{}, fmt.Errorf("read stdin: %w", err)
	}
	delim := importer.DetectCSVDelimiter(data)
	return importer.ImportCSVFromReader(bytes.NewReader(data), delim), nil
}

// parseBin parses "WxHxD" or "ID=WxHxD".
func parseBin(spec string) (model.Bin, error) {
	var id string
	dims := spec
	if i := strings.IndexByte(spec, '='); i >= 0 {
		id, dims = strings.TrimSpace(spec[:i]), spec[i+1:]
	}
	w, h, d, err := parseDims(dims)
	if err != nil {
		return model.Bin{}, fmt.Errorf("bin %q: %w", spec, err)
	}
	b := model.NewBin(w, h, d)
	b.ID = id
	return b, nil
}

// parseDims parses "WxHxD"; "x", "X" and "*" separate the values.
func parseDims(s string) (w, h, d float64, err error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == 'x' || r == 'X' || r == '*'
	})
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("want WxHxD, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		v[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("dimension %q: %w", p, err)
		}
		if v[i] < 0 {
			return 0, 0, 0, fmt.Errorf("dimension %q is negative", p)
		}
	}
	return v[0], v[1], v[2], nil
}
