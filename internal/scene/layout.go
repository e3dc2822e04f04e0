// Package scene holds the retained drawing state of the plot: axis ticks,
// state markers, caption labels and the shared tooltip. Renderers update
// these handles in place and Frame snapshots them for output.
package scene

import (
	"time"

	"github.com/sells-group/state-scatter/internal/anim"
	"github.com/sells-group/state-scatter/internal/scale"
)

// DefaultTitle is the heading drawn above the plot.
const DefaultTitle = "Behavioral risk factors and health indicators by State"

// Margin is the space around the plot area.
type Margin struct {
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
}

// Layout fixes the geometry and timing of the plot.
type Layout struct {
	Width     float64       `json:"width" yaml:"width"`
	Height    float64       `json:"height" yaml:"height"`
	Margin    Margin        `json:"margin" yaml:"margin"`
	Radius    float64       `json:"marker_radius" yaml:"marker_radius"`
	LabelDY   float64       `json:"label_dy" yaml:"label_dy"`
	Duration  time.Duration `json:"-" yaml:"-"`
	TickCount int           `json:"tick_count" yaml:"tick_count"`
	Title     string        `json:"title" yaml:"title"`
}

// DefaultLayout returns an 800x700 plot with the standard margins.
func DefaultLayout() Layout {
	return Layout{
		Width:     800,
		Height:    700,
		Margin:    Margin{Left: 100, Right: 20, Top: 50, Bottom: 150},
		Radius:    30,
		LabelDY:   6,
		Duration:  anim.DefaultDuration,
		TickCount: scale.DefaultTickCount,
		Title:     DefaultTitle,
	}
}

// OuterWidth is the width of the whole drawing including margins.
func (l Layout) OuterWidth() float64 {
	return l.Width + l.Margin.Left + l.Margin.Right
}

// OuterHeight is the height of the whole drawing including margins.
func (l Layout) OuterHeight() float64 {
	return l.Height + l.Margin.Top + l.Margin.Bottom
}

func (l Layout) tickCount() int {
	if l.TickCount <= 0 {
		return scale.DefaultTickCount
	}
	return l.TickCount
}
