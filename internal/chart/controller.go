// Package chart owns the plotted selection and drives every redraw of the
// scene when a caption is clicked.
package chart

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scale"
	"github.com/sells-group/state-scatter/internal/scene"
)

// Controller holds the selection and the scene handles built from it. It is
// not safe for concurrent use; run it behind a Loop.
type Controller struct {
	records  []model.StateRecord
	layout   scene.Layout
	sel      model.Selection
	xScale   scale.Linear
	yScale   scale.Linear
	xAxis    *scene.AxisHandle
	yAxis    *scene.AxisHandle
	markers  *scene.Markers
	binder   *scene.Binder
	captions *scene.Captions
}

// New builds the initial scene for records with the default selection:
// both scales, both axes, the markers, tooltip bindings and captions.
func New(records []model.StateRecord, l scene.Layout, now time.Time) *Controller {
	c := &Controller{
		records: records,
		layout:  l,
		sel:     model.DefaultSelection(),
		xAxis:   scene.NewAxis(model.AxisX, l),
		yAxis:   scene.NewAxis(model.AxisY, l),
		markers: scene.NewMarkers(records, l),
		binder:  scene.NewBinder(),
	}
	c.xScale = c.buildScale(model.AxisX)
	c.yScale = c.buildScale(model.AxisY)
	scene.RenderAxis(c.xAxis, c.xScale, now)
	scene.RenderAxis(c.yAxis, c.yScale, now)
	scene.RenderMarkers(c.markers, c.xScale, c.yScale, c.sel, now)
	c.binder.Bind(c.markers, c.sel)
	c.captions = scene.NewCaptions(l, c.sel)
	return c
}

func (c *Controller) buildScale(axis model.Axis) scale.Linear {
	if axis == model.AxisY {
		return scale.Build(c.records, c.sel.Y, c.layout.Height, true)
	}
	return scale.Build(c.records, c.sel.X, c.layout.Width, false)
}

// Click selects f on its axis. Clicking the field already selected on its
// axis does nothing and returns false. Otherwise, in order: the selection
// is updated, that axis's scale rebuilt and its axis redrawn, every marker
// retargeted, tooltips rebound to the new selection, and the captions of
// that axis restyled.
func (c *Controller) Click(f model.Field, now time.Time) bool {
	axis := f.Axis()
	if axis == "" || c.sel.Active(f) {
		return false
	}

	c.sel = c.sel.With(f)

	s := c.buildScale(axis)
	if axis == model.AxisX {
		c.xScale = s
		scene.RenderAxis(c.xAxis, s, now)
	} else {
		c.yScale = s
		scene.RenderAxis(c.yAxis, s, now)
	}

	scene.RenderMarkers(c.markers, c.xScale, c.yScale, c.sel, now)
	binding := c.binder.Bind(c.markers, c.sel)
	c.captions.Update(axis, c.sel)

	zap.L().Debug("chart: selection changed",
		zap.String("axis", string(axis)),
		zap.String("field", f.String()),
		zap.String("binding", binding),
	)
	return true
}

// Hover dispatches a pointer-enter on marker index for the given binding.
func (c *Controller) Hover(index int, binding string, now time.Time) (scene.TooltipFrame, error) {
	return c.binder.Dispatch(c.markers, index, scene.EventEnter, binding, now)
}

// Leave dispatches a pointer-leave on marker index for the given binding.
func (c *Controller) Leave(index int, binding string, now time.Time) (scene.TooltipFrame, error) {
	return c.binder.Dispatch(c.markers, index, scene.EventLeave, binding, now)
}

// Selection returns the current selection.
func (c *Controller) Selection() model.Selection { return c.sel }

// Scale returns the current scale of an axis.
func (c *Controller) Scale(axis model.Axis) scale.Linear {
	if axis == model.AxisY {
		return c.yScale
	}
	return c.xScale
}

// Records returns the dataset the controller plots.
func (c *Controller) Records() []model.StateRecord { return c.records }

// Layout returns the plot geometry.
func (c *Controller) Layout() scene.Layout { return c.layout }

// Binding returns the id of the current tooltip binding.
func (c *Controller) Binding() string { return c.binder.Binding() }

// Frame snapshots the scene at now. Exited ticks are pruned first.
func (c *Controller) Frame(now time.Time) scene.Frame {
	c.xAxis.Prune(now)
	c.yAxis.Prune(now)
	return scene.Frame{
		At:        now,
		Layout:    c.layout,
		Selection: c.sel,
		Binding:   c.binder.Binding(),
		XAxis:     c.xAxis.Snapshot(c.sel.X, now),
		YAxis:     c.yAxis.Snapshot(c.sel.Y, now),
		Markers:   c.markers.Snapshot(c.sel, now),
		Captions:  c.captions.Snapshot(),
		Tooltip:   c.binder.Tooltip(),
	}
}
