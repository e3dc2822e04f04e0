// Package svg draws a scene frame as an SVG document and wraps it in the
// interactive HTML page.
package svg

import (
	"io"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"

	"github.com/sells-group/state-scatter/internal/scene"
)

// KeySplines approximates cubic in-out easing for SMIL spline animation.
const KeySplines = "0.645 0.045 0.355 1"

// Tooltip box geometry.
const (
	tipWidth      = 200
	tipLineHeight = 16
	tipGap        = 8
)

var funcs = template.FuncMap{
	"num":       num,
	"ms":        ms,
	"splines":   func() string { return KeySplines },
	"animating": func(m scene.Motion) bool { return m.Animating() },
	"moving":    func(a, b scene.Motion) bool { return a.Animating() || b.Animating() },
	"captionClass": func(c scene.CaptionFrame) string {
		if c.Active {
			return "aText active"
		}
		return "aText inactive"
	},
}

var docTmpl = template.Must(template.New("svg").Funcs(funcs).Parse(svgSource))

type tipLine struct {
	Y    float64
	Text string
}

type tooltipView struct {
	Index int
	X, Y  float64
	BoxX  float64
	BoxY  float64
	BoxW  float64
	BoxH  float64
	Lines []tipLine
}

type docView struct {
	scene.Frame
	TitleX   float64
	TitleY   float64
	TickSize float64
	Tip      *tooltipView
}

// Write renders f as a standalone SVG document. Transitions still in flight
// at f.At are emitted as SMIL animations that resume where the frame left
// off.
func Write(w io.Writer, f scene.Frame) error {
	if err := docTmpl.Execute(w, newDocView(f)); err != nil {
		return eris.Wrap(err, "svg: render")
	}
	return nil
}

func newDocView(f scene.Frame) docView {
	v := docView{
		Frame:    f,
		TitleX:   f.Layout.OuterWidth() / 2,
		TitleY:   f.Layout.Margin.Top / 2,
		TickSize: 6,
	}
	if !f.Tooltip.Visible {
		return v
	}
	// The tip sits above the hovered marker.
	radius := f.Layout.Radius
	lines := strings.Split(f.Tooltip.Text, "<br>")
	bottom := -(radius + tipGap)
	tip := &tooltipView{
		Index: f.Tooltip.Index,
		X:     f.Tooltip.X.Float(),
		Y:     f.Tooltip.Y.Float(),
		BoxX:  -tipWidth / 2,
		BoxW:  tipWidth,
		BoxH:  float64(len(lines))*tipLineHeight + tipGap,
	}
	tip.BoxY = bottom - tip.BoxH
	for i, line := range lines {
		tip.Lines = append(tip.Lines, tipLine{
			Y:    tip.BoxY + tipGap/2 + float64(i+1)*tipLineHeight - 4,
			Text: line,
		})
	}
	v.Tip = tip
	return v
}

func num(v any) string {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case scene.Num:
		f = float64(x)
	case int:
		f = float64(x)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

func ms(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64) + "ms"
}

const svgSource = `<svg xmlns="http://www.w3.org/2000/svg" class="chart" width="{{num .Layout.OuterWidth}}" height="{{num .Layout.OuterHeight}}" viewBox="0 0 {{num .Layout.OuterWidth}} {{num .Layout.OuterHeight}}" data-binding="{{.Binding}}" data-x="{{.Selection.X}}" data-y="{{.Selection.Y}}">
<style>
.title{font:bold 20px sans-serif;text-anchor:middle}
.axis text{font:10px sans-serif}
.axis path,.axis line{fill:none;stroke:#000}
.stateCircle{fill:#89bdd3;stroke:#e3e3e3}
.stateText{font:bold 14px sans-serif;fill:#fff;text-anchor:middle;pointer-events:none}
.aText{font:16px sans-serif;text-anchor:middle;cursor:pointer}
.active{font-weight:bold;fill:#000}
.inactive{fill:#c4c4c4}
.inactive:hover{fill:#000}
.d3-tip rect{fill:rgba(0,0,0,0.8)}
.d3-tip text{font:12px sans-serif;fill:#fff;text-anchor:middle}
</style>
<text class="title" x="{{num .TitleX}}" y="{{num .TitleY}}">{{html .Layout.Title}}</text>
<g class="plot" transform="translate({{num .Layout.Margin.Left}},{{num .Layout.Margin.Top}})">
{{- with .XAxis}}
<g class="x axis" data-field="{{.Field}}" transform="translate(0,{{num $.Layout.Height}})">
<path class="domain" d="M{{num (index .Range 0)}},{{num $.TickSize}}V0H{{num (index .Range 1)}}V{{num $.TickSize}}"/>
{{- range .Ticks}}
<g class="tick" opacity="{{num .Opacity.Value}}" transform="translate({{num .Pos.Value}},0)">
{{- if animating .Pos}}<animateTransform attributeName="transform" type="translate" from="{{num .Pos.From}},0" to="{{num .Pos.To}},0" dur="{{ms .Pos.DurationMS}}" begin="-{{ms .Pos.ElapsedMS}}" fill="freeze" calcMode="spline" keyTimes="0;1" keySplines="{{splines}}"/>{{end}}
{{- if animating .Opacity}}<animate attributeName="opacity" from="{{num .Opacity.From}}" to="{{num .Opacity.To}}" dur="{{ms .Opacity.DurationMS}}" begin="-{{ms .Opacity.ElapsedMS}}" fill="freeze" calcMode="spline" keyTimes="0;1" keySplines="{{splines}}"/>{{end}}
<line y2="{{num $.TickSize}}"/><text y="9" dy="0.71em" text-anchor="middle">{{html .Label}}</text></g>
{{- end}}
</g>
{{- end}}
{{- with .YAxis}}
<g class="y axis" data-field="{{.Field}}">
<path class="domain" d="M-{{num $.TickSize}},{{num (index .Range 0)}}H0V{{num (index .Range 1)}}H-{{num $.TickSize}}"/>
{{- range .Ticks}}
<g class="tick" opacity="{{num .Opacity.Value}}" transform="translate(0,{{num .Pos.Value}})">
{{- if animating .Pos}}<animateTransform attributeName="transform" type="translate" from="0,{{num .Pos.From}}" to="0,{{num .Pos.To}}" dur="{{ms .Pos.DurationMS}}" begin="-{{ms .Pos.ElapsedMS}}" fill="freeze" calcMode="spline" keyTimes="0;1" keySplines="{{splines}}"/>{{end}}
{{- if animating .Opacity}}<animate attributeName="opacity" from="{{num .Opacity.From}}" to="{{num .Opacity.To}}" dur="{{ms .Opacity.DurationMS}}" begin="-{{ms .Opacity.ElapsedMS}}" fill="freeze" calcMode="spline" keyTimes="0;1" keySplines="{{splines}}"/>{{end}}
<line x2="-{{num $.TickSize}}"/><text x="-9" dy="0.32em" text-anchor="end">{{html .Label}}</text></g>
{{- end}}
</g>
{{- end}}
<g class="markers">
{{- range .Markers}}
<g class="marker" data-index="{{.Index}}" transform="translate({{num .X.Value}},{{num .Y.Value}})">
{{- if moving .X .Y}}<animateTransform attributeName="transform" type="translate" from="{{num .X.From}},{{num .Y.From}}" to="{{num .X.To}},{{num .Y.To}}" dur="{{ms .X.DurationMS}}" begin="-{{ms .X.ElapsedMS}}" fill="freeze" calcMode="spline" keyTimes="0;1" keySplines="{{splines}}"/>{{end}}
<circle class="stateCircle" r="{{num .Radius}}"/><text class="stateText" dy="{{num .LabelDY}}">{{html .Abbr}}</text></g>
{{- end}}
</g>
<g class="captions">
{{- range .Captions}}
<text class="{{captionClass .}}" data-field="{{.Field}}" data-axis="{{.Axis}}" x="{{num .X}}" y="{{num .Y}}"{{if .Rotate}} transform="rotate({{num .Rotate}})"{{end}}>{{html .Text}}</text>
{{- end}}
</g>
{{- with .Tip}}
<g class="d3-tip" data-index="{{.Index}}" transform="translate({{num .X}},{{num .Y}})">
<rect x="{{num .BoxX}}" y="{{num .BoxY}}" width="{{num .BoxW}}" height="{{num .BoxH}}" rx="4"/>
{{- range .Lines}}
<text y="{{num .Y}}">{{html .Text}}</text>
{{- end}}
</g>
{{- end}}
</g>
</svg>
`
