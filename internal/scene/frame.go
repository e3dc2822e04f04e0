package scene

import (
	"encoding/json"
	"math"
	"time"

	"github.com/sells-group/state-scatter/internal/anim"
	"github.com/sells-group/state-scatter/internal/model"
)

// Num is a float64 that encodes NaN and infinities as JSON null.
type Num float64

// MarshalJSON implements json.Marshaler.
func (n Num) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Float returns n as a float64.
func (n Num) Float() float64 { return float64(n) }

// Motion is a tween sampled at a point in time.
type Motion struct {
	Value      Num     `json:"value" yaml:"value"`
	From       Num     `json:"from" yaml:"from"`
	To         Num     `json:"to" yaml:"to"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	ElapsedMS  float64 `json:"elapsed_ms" yaml:"elapsed_ms"`
}

func sample(t anim.Tween, now time.Time) Motion {
	return Motion{
		Value:      Num(t.At(now)),
		From:       Num(t.From),
		To:         Num(t.To),
		DurationMS: float64(t.Duration) / float64(time.Millisecond),
		ElapsedMS:  float64(t.Elapsed(now)) / float64(time.Millisecond),
	}
}

// Animating reports whether the motion is still in flight.
func (m Motion) Animating() bool {
	return m.ElapsedMS < m.DurationMS
}

// TickFrame is one axis tick.
type TickFrame struct {
	Value   Num    `json:"value" yaml:"value"`
	Label   string `json:"label" yaml:"label"`
	Pos     Motion `json:"pos" yaml:"pos"`
	Opacity Motion `json:"opacity" yaml:"opacity"`
	Exiting bool   `json:"exiting,omitempty" yaml:"exiting,omitempty"`
}

// AxisFrame is one axis with its current scale and ticks.
type AxisFrame struct {
	Axis   model.Axis  `json:"axis" yaml:"axis"`
	Field  model.Field `json:"field" yaml:"field"`
	Domain [2]Num      `json:"domain" yaml:"domain"`
	Range  [2]Num      `json:"range" yaml:"range"`
	Ticks  []TickFrame `json:"ticks" yaml:"ticks"`
}

// MarkerFrame is one state marker.
type MarkerFrame struct {
	Index   int     `json:"index" yaml:"index"`
	State   string  `json:"state" yaml:"state"`
	Abbr    string  `json:"abbr" yaml:"abbr"`
	XValue  Num     `json:"x_value" yaml:"x_value"`
	YValue  Num     `json:"y_value" yaml:"y_value"`
	X       Motion  `json:"x" yaml:"x"`
	Y       Motion  `json:"y" yaml:"y"`
	Radius  float64 `json:"r" yaml:"r"`
	LabelDY float64 `json:"label_dy" yaml:"label_dy"`
}

// CaptionFrame is one clickable axis caption. X and Y are in chart
// coordinates; Rotate is applied before positioning.
type CaptionFrame struct {
	Field  model.Field `json:"field" yaml:"field"`
	Axis   model.Axis  `json:"axis" yaml:"axis"`
	Text   string      `json:"text" yaml:"text"`
	Active bool        `json:"active" yaml:"active"`
	X      float64     `json:"x" yaml:"x"`
	Y      float64     `json:"y" yaml:"y"`
	Rotate float64     `json:"rotate,omitempty" yaml:"rotate,omitempty"`
}

// TooltipFrame is the shared tooltip. X and Y anchor it to the marker
// centre captured when it was shown.
type TooltipFrame struct {
	Visible bool   `json:"visible" yaml:"visible"`
	Index   int    `json:"index" yaml:"index"`
	Text    string `json:"text" yaml:"text"`
	X       Num    `json:"x" yaml:"x"`
	Y       Num    `json:"y" yaml:"y"`
}

// Frame is an immutable snapshot of the whole scene at one instant.
type Frame struct {
	At        time.Time       `json:"at" yaml:"at"`
	Layout    Layout          `json:"layout" yaml:"layout"`
	Selection model.Selection `json:"selection" yaml:"selection"`
	Binding   string          `json:"binding" yaml:"binding"`
	XAxis     AxisFrame       `json:"x_axis" yaml:"x_axis"`
	YAxis     AxisFrame       `json:"y_axis" yaml:"y_axis"`
	Markers   []MarkerFrame   `json:"markers" yaml:"markers"`
	Captions  []CaptionFrame  `json:"captions" yaml:"captions"`
	Tooltip   TooltipFrame    `json:"tooltip" yaml:"tooltip"`
}

// Animating reports whether any tick or marker is still moving.
func (f Frame) Animating() bool {
	for _, a := range []AxisFrame{f.XAxis, f.YAxis} {
		for _, t := range a.Ticks {
			if t.Pos.Animating() || t.Opacity.Animating() {
				return true
			}
		}
	}
	for _, m := range f.Markers {
		if m.X.Animating() || m.Y.Animating() {
			return true
		}
	}
	return false
}
