package scene

import (
	"time"

	"github.com/sells-group/state-scatter/internal/anim"
	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scale"
)

// Event is a pointer event a marker can dispatch.
type Event string

// Marker events.
const (
	EventEnter Event = "mouseover"
	EventLeave Event = "mouseout"
)

// Handler reacts to a marker event at a point in time.
type Handler func(now time.Time)

type boundHandler struct {
	binding string
	fn      Handler
}

// Marker is the circle and abbreviation label drawn for one state.
type Marker struct {
	index    int
	record   model.StateRecord
	x, y     anim.Tween
	placed   bool
	handlers map[Event]boundHandler
}

// Index is the marker's position in dataset order.
func (m *Marker) Index() int { return m.index }

// Record returns the state the marker draws.
func (m *Marker) Record() model.StateRecord { return m.record }

// Position returns the interpolated centre at now.
func (m *Marker) Position(now time.Time) (x, y float64) {
	return m.x.At(now), m.y.At(now)
}

// Target returns where the marker is heading.
func (m *Marker) Target() (x, y float64) {
	return m.x.To, m.y.To
}

// On attaches fn for ev under a binding id, replacing any previous handler.
func (m *Marker) On(ev Event, binding string, fn Handler) {
	m.handlers[ev] = boundHandler{binding: binding, fn: fn}
}

// Off detaches the handler for ev.
func (m *Marker) Off(ev Event) {
	delete(m.handlers, ev)
}

// Handlers returns the number of attached handlers.
func (m *Marker) Handlers() int { return len(m.handlers) }

// Dispatch runs the handler for ev if it was attached under binding.
func (m *Marker) Dispatch(ev Event, binding string, now time.Time) error {
	h, ok := m.handlers[ev]
	if !ok || h.binding != binding {
		return ErrDetached
	}
	h.fn(now)
	return nil
}

// Markers is the fixed set of state markers, one per record in dataset
// order. The set never changes after NewMarkers.
type Markers struct {
	items    []*Marker
	radius   float64
	labelDY  float64
	duration time.Duration
}

// NewMarkers creates one marker per record. Markers have no position until
// the first RenderMarkers.
func NewMarkers(records []model.StateRecord, l Layout) *Markers {
	m := &Markers{
		items:    make([]*Marker, len(records)),
		radius:   l.Radius,
		labelDY:  l.LabelDY,
		duration: l.Duration,
	}
	for i, r := range records {
		m.items[i] = &Marker{index: i, record: r, handlers: make(map[Event]boundHandler, 2)}
	}
	return m
}

// Len returns the number of markers.
func (m *Markers) Len() int { return len(m.items) }

// At returns the marker at index i.
func (m *Markers) At(i int) (*Marker, bool) {
	if i < 0 || i >= len(m.items) {
		return nil, false
	}
	return m.items[i], true
}

// RenderMarkers moves every marker toward (x(record[X]), y(record[Y])).
// The first render places markers without animation; later renders start
// from the current interpolated position.
func RenderMarkers(m *Markers, x, y scale.Linear, sel model.Selection, now time.Time) {
	for _, mk := range m.items {
		tx := x.Apply(mk.record.Value(sel.X))
		ty := y.Apply(mk.record.Value(sel.Y))
		if !mk.placed {
			mk.x, mk.y = anim.Static(tx), anim.Static(ty)
			mk.placed = true
			continue
		}
		mk.x = mk.x.Retarget(tx, now, m.duration)
		mk.y = mk.y.Retarget(ty, now, m.duration)
	}
}

// Snapshot samples every marker at now.
func (m *Markers) Snapshot(sel model.Selection, now time.Time) []MarkerFrame {
	out := make([]MarkerFrame, len(m.items))
	for i, mk := range m.items {
		out[i] = MarkerFrame{
			Index:   mk.index,
			State:   mk.record.State,
			Abbr:    mk.record.Abbr,
			XValue:  Num(mk.record.Value(sel.X)),
			YValue:  Num(mk.record.Value(sel.Y)),
			X:       sample(mk.x, now),
			Y:       sample(mk.y, now),
			Radius:  m.radius,
			LabelDY: m.labelDY,
		}
	}
	return out
}
