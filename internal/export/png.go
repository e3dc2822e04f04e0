// Package export draws static raster snapshots of a scene frame.
package export

import (
	"io"
	"math"

	"github.com/rotisserie/eris"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scale"
	"github.com/sells-group/state-scatter/internal/scene"
)

var markerColor = drawing.ColorFromHex("89bdd3")

// WritePNG draws the frame's markers at their data values over the current
// domains, with state abbreviations as annotations and the active captions
// as axis names. Markers whose value is not a finite number are skipped.
func WritePNG(w io.Writer, f scene.Frame) error {
	xs := make([]float64, 0, len(f.Markers))
	ys := make([]float64, 0, len(f.Markers))
	notes := make([]chart.Value2, 0, len(f.Markers))
	for _, m := range f.Markers {
		x, y := m.XValue.Float(), m.YValue.Float()
		if !finite(x) || !finite(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
		notes = append(notes, chart.Value2{XValue: x, YValue: y, Label: m.Abbr})
	}
	if len(xs) == 0 {
		return eris.New("export: no plottable markers")
	}

	ch := chart.Chart{
		Title:      f.Layout.Title,
		Width:      int(f.Layout.OuterWidth()),
		Height:     int(f.Layout.OuterHeight()),
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      axis(f.XAxis, f.Selection.X).x(),
		YAxis:      axis(f.YAxis, f.Selection.Y).y(),
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    f.Selection.X.Meta().Caption + " vs " + f.Selection.Y.Meta().Caption,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    f.Layout.Radius / 3,
					DotColor:    markerColor,
				},
			},
			chart.AnnotationSeries{Annotations: notes},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return eris.Wrap(err, "export: render png")
	}
	return nil
}

type axisSpec struct {
	name  string
	rng   *chart.ContinuousRange
	ticks []chart.Tick
}

// axis converts an axis frame into go-chart range and ticks. A domain that
// is empty or degenerate is widened so the chart can still be drawn.
func axis(a scene.AxisFrame, field model.Field) axisSpec {
	lo, hi := a.Domain[0].Float(), a.Domain[1].Float()
	spec := axisSpec{name: field.Meta().Caption}
	if !finite(lo) || !finite(hi) {
		return spec
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	spec.rng = &chart.ContinuousRange{Min: lo, Max: hi}

	s := scale.New(lo, hi, 0, 1)
	format := s.TickFormat(scale.DefaultTickCount)
	for _, v := range s.Ticks(scale.DefaultTickCount) {
		spec.ticks = append(spec.ticks, chart.Tick{Value: v, Label: format(v)})
	}
	return spec
}

func (s axisSpec) x() chart.XAxis {
	ax := chart.XAxis{Name: s.name, Ticks: s.ticks}
	if s.rng != nil {
		ax.Range = s.rng
	}
	return ax
}

func (s axisSpec) y() chart.YAxis {
	ax := chart.YAxis{Name: s.name, Ticks: s.ticks}
	if s.rng != nil {
		ax.Range = s.rng
	}
	return ax
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
