package scene

import (
	"math"
	"time"

	"github.com/sells-group/state-scatter/internal/anim"
	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scale"
)

type tick struct {
	value   float64
	label   string
	pos     anim.Tween
	opacity anim.Tween
	exiting bool
}

// AxisHandle is the retained state of one axis: the scale it last drew and
// its tick elements, keyed by tick value.
type AxisHandle struct {
	axis     model.Axis
	scale    scale.Linear
	ticks    []*tick
	rendered bool
	duration time.Duration
	count    int
}

// NewAxis returns an empty handle for an axis. Nothing is drawn until the
// first RenderAxis.
func NewAxis(axis model.Axis, l Layout) *AxisHandle {
	return &AxisHandle{axis: axis, duration: l.Duration, count: l.tickCount()}
}

// Axis returns which axis the handle draws.
func (a *AxisHandle) Axis() model.Axis { return a.axis }

// Scale returns the scale most recently rendered.
func (a *AxisHandle) Scale() scale.Linear { return a.scale }

// RenderAxis redraws the axis for s. Ticks present in both the old and new
// scale move from where they currently are; new ticks enter from where the
// old scale would have put them and fade in; ticks that disappear move to
// the new scale's position while fading out, and are pruned once gone.
// The first call places ticks directly. A call with the scale already drawn
// does nothing and returns false.
func RenderAxis(a *AxisHandle, s scale.Linear, now time.Time) bool {
	if a.rendered && a.scale.Equal(s) {
		return false
	}
	a.Prune(now)

	values := s.Ticks(a.count)
	format := s.TickFormat(a.count)

	if !a.rendered {
		a.ticks = make([]*tick, 0, len(values))
		for _, v := range values {
			a.ticks = append(a.ticks, &tick{
				value:   v,
				label:   format(v),
				pos:     anim.Static(s.Apply(v)),
				opacity: anim.Static(1),
			})
		}
		a.scale = s
		a.rendered = true
		return true
	}

	prev := a.scale
	existing := make(map[float64]*tick, len(a.ticks))
	for _, t := range a.ticks {
		existing[t.value] = t
	}

	next := make([]*tick, 0, len(values)+len(a.ticks))
	kept := make(map[float64]bool, len(values))
	for _, v := range values {
		target := s.Apply(v)
		if t, ok := existing[v]; ok {
			t.label = format(v)
			t.exiting = false
			t.pos = t.pos.Retarget(target, now, a.duration)
			t.opacity = t.opacity.Retarget(1, now, a.duration)
			next = append(next, t)
			kept[v] = true
			continue
		}
		from := prev.Apply(v)
		if !finite(from) {
			from = target
		}
		next = append(next, &tick{
			value:   v,
			label:   format(v),
			pos:     anim.Move(from, target, now, a.duration),
			opacity: anim.Move(0, 1, now, a.duration),
		})
	}

	for _, t := range a.ticks {
		if kept[t.value] {
			continue
		}
		target := s.Apply(t.value)
		if !finite(target) {
			target = t.pos.At(now)
		}
		t.pos = t.pos.Retarget(target, now, a.duration)
		t.opacity = t.opacity.Retarget(0, now, a.duration)
		t.exiting = true
		next = append(next, t)
	}

	a.ticks = next
	a.scale = s
	return true
}

// Prune drops exiting ticks whose fade-out has finished.
func (a *AxisHandle) Prune(now time.Time) {
	live := a.ticks[:0]
	for _, t := range a.ticks {
		if t.exiting && t.opacity.Done(now) {
			continue
		}
		live = append(live, t)
	}
	a.ticks = live
}

// Snapshot samples the axis at now. Finished exiting ticks are left out.
func (a *AxisHandle) Snapshot(field model.Field, now time.Time) AxisFrame {
	f := AxisFrame{
		Axis:   a.axis,
		Field:  field,
		Domain: [2]Num{Num(a.scale.Domain[0]), Num(a.scale.Domain[1])},
		Range:  [2]Num{Num(a.scale.Range[0]), Num(a.scale.Range[1])},
		Ticks:  make([]TickFrame, 0, len(a.ticks)),
	}
	for _, t := range a.ticks {
		if t.exiting && t.opacity.Done(now) {
			continue
		}
		f.Ticks = append(f.Ticks, TickFrame{
			Value:   Num(t.value),
			Label:   t.label,
			Pos:     sample(t.pos, now),
			Opacity: sample(t.opacity, now),
			Exiting: t.exiting,
		})
	}
	return f
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
