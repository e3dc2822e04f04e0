package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/state-scatter/internal/chart"
	"github.com/sells-group/state-scatter/internal/export"
	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scene"
	"github.com/sells-group/state-scatter/internal/svg"
)

var (
	renderX      string
	renderY      string
	renderFormat string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a static snapshot of the plot",
	Long:  "Renders the plot for the chosen x and y fields as SVG, PNG, frame JSON or frame YAML, after all transitions have settled.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("render"); err != nil {
			return err
		}

		sel, err := parseSelection(renderX, renderY)
		if err != nil {
			return err
		}

		records, err := loadRecords(cmd.Context(), cfg.Dataset, dataPath)
		if err != nil {
			return err
		}

		w := io.Writer(os.Stdout)
		if renderOut != "" {
			f, err := os.Create(renderOut)
			if err != nil {
				return eris.Wrapf(err, "render: create %s", renderOut)
			}
			defer f.Close() //nolint:errcheck
			w = f
		}

		if err := renderSnapshot(w, records, cfg.Chart.Layout(), sel, renderFormat); err != nil {
			return err
		}
		if renderOut != "" {
			zap.L().Info("snapshot written",
				zap.String("path", renderOut),
				zap.String("format", renderFormat),
				zap.String("x", sel.X.String()),
				zap.String("y", sel.Y.String()),
			)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderX, "x", string(model.FieldPoverty), "x-axis field: poverty, age or income")
	renderCmd.Flags().StringVar(&renderY, "y", string(model.FieldHealthcare), "y-axis field: healthcare, smokes or obesity")
	renderCmd.Flags().StringVar(&renderFormat, "format", "svg", "output format: svg, png, json or yaml")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

// parseSelection resolves the --x and --y flags, checking each names a
// field of the right axis.
func parseSelection(x, y string) (model.Selection, error) {
	xf, ok := model.ParseField(x)
	if !ok || xf.Axis() != model.AxisX {
		return model.Selection{}, eris.Errorf("render: %q is not an x-axis field", x)
	}
	yf, ok := model.ParseField(y)
	if !ok || yf.Axis() != model.AxisY {
		return model.Selection{}, eris.Errorf("render: %q is not a y-axis field", y)
	}
	return model.Selection{X: xf, Y: yf}, nil
}

// renderSnapshot drives a fresh controller to sel with caption clicks, lets
// the transitions finish, and writes the resulting frame in format.
func renderSnapshot(w io.Writer, records []model.StateRecord, l scene.Layout, sel model.Selection, format string) error {
	start := time.Now()
	c := chart.New(records, l, start)
	c.Click(sel.X, start)
	c.Click(sel.Y, start)
	f := c.Frame(start.Add(l.Duration))

	switch strings.ToLower(format) {
	case "svg":
		return svg.Write(w, f)
	case "png":
		return export.WritePNG(w, f)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return eris.Wrap(err, "render: encode json")
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return eris.Wrap(err, "render: encode yaml")
		}
		return enc.Close()
	default:
		return eris.Errorf("render: unknown format %q", format)
	}
}
