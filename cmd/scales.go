package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scale"
	"github.com/sells-group/state-scatter/internal/scene"
)

var scalesFormat string

type tickReport struct {
	Value scene.Num `json:"value" yaml:"value"`
	Label string    `json:"label" yaml:"label"`
}

type scaleReport struct {
	Field   model.Field  `json:"field" yaml:"field"`
	Axis    model.Axis   `json:"axis" yaml:"axis"`
	Caption string       `json:"caption" yaml:"caption"`
	Domain  [2]scene.Num `json:"domain" yaml:"domain"`
	Range   [2]scene.Num `json:"range" yaml:"range"`
	Ticks   []tickReport `json:"ticks" yaml:"ticks"`
}

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "Print the scale domain and ticks of every field",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("render"); err != nil {
			return err
		}
		records, err := loadRecords(cmd.Context(), cfg.Dataset, dataPath)
		if err != nil {
			return err
		}
		return writeScales(os.Stdout, buildScaleReports(records, cfg.Chart.Layout()), scalesFormat)
	},
}

func init() {
	scalesCmd.Flags().StringVar(&scalesFormat, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(scalesCmd)
}

// buildScaleReports computes the scale each of the six fields would get.
func buildScaleReports(records []model.StateRecord, l scene.Layout) []scaleReport {
	count := l.TickCount
	if count <= 0 {
		count = scale.DefaultTickCount
	}
	var out []scaleReport
	for _, m := range model.Fields() {
		var s scale.Linear
		if m.Axis == model.AxisY {
			s = scale.Build(records, m.Field, l.Height, true)
		} else {
			s = scale.Build(records, m.Field, l.Width, false)
		}
		format := s.TickFormat(count)
		r := scaleReport{
			Field:   m.Field,
			Axis:    m.Axis,
			Caption: m.Caption,
			Domain:  [2]scene.Num{scene.Num(s.Domain[0]), scene.Num(s.Domain[1])},
			Range:   [2]scene.Num{scene.Num(s.Range[0]), scene.Num(s.Range[1])},
			Ticks:   []tickReport{},
		}
		for _, v := range s.Ticks(count) {
			r.Ticks = append(r.Ticks, tickReport{Value: scene.Num(v), Label: format(v)})
		}
		out = append(out, r)
	}
	return out
}

func writeScales(w io.Writer, reports []scaleReport, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return eris.Wrap(err, "scales: encode json")
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return eris.Wrap(err, "scales: encode yaml")
		}
		return enc.Close()
	default:
		return eris.Errorf("scales: unknown format %q", format)
	}
}
