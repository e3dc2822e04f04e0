package scene

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/state-scatter/internal/model"
)

var (
	// ErrDetached is returned when an event arrives for a handler that has
	// since been replaced by a newer binding.
	ErrDetached = eris.New("scene: handler detached")
	// ErrNoMarker is returned for an out-of-range marker index.
	ErrNoMarker = eris.New("scene: no such marker")
)

// TooltipText renders the hover text for a record under a selection:
// state, then x label/value/suffix, then y label/value/suffix, separated by
// <br>.
func TooltipText(r model.StateRecord, sel model.Selection) string {
	xm, ym := sel.X.Meta(), sel.Y.Meta()
	var b strings.Builder
	b.WriteString(r.State)
	b.WriteString("<br>")
	b.WriteString(xm.Label)
	b.WriteString(FormatValue(r.Value(sel.X)))
	b.WriteString(xm.Suffix)
	b.WriteString("<br>")
	b.WriteString(ym.Label)
	b.WriteString(FormatValue(r.Value(sel.Y)))
	b.WriteString(ym.Suffix)
	return b.String()
}

// FormatValue prints v as the shortest decimal that round-trips. Magnitudes
// of 1e21 and above or below 1e-6 switch to exponent form ("1e+21",
// "1.5e-7"), the way browsers print numbers.
func FormatValue(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	if a := math.Abs(v); a >= 1e21 || a < 1e-6 {
		mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Binder owns the shared tooltip and the hover handlers attached to the
// markers.
type Binder struct {
	binding string
	tip     TooltipFrame
}

// NewBinder returns a binder with a hidden tooltip and no bindings.
func NewBinder() *Binder {
	return &Binder{}
}

// Binding returns the id of the current binding.
func (b *Binder) Binding() string { return b.binding }

// Tooltip returns the tooltip state.
func (b *Binder) Tooltip() TooltipFrame { return b.tip }

// Bind detaches the previous hover handlers from every marker and attaches
// new ones that render tooltip text for sel. It returns the new binding id.
func (b *Binder) Bind(m *Markers, sel model.Selection) string {
	id := uuid.NewString()
	for _, mk := range m.items {
		mk.Off(EventEnter)
		mk.Off(EventLeave)

		mk := mk
		mk.On(EventEnter, id, func(now time.Time) {
			x, y := mk.Position(now)
			b.tip = TooltipFrame{
				Visible: true,
				Index:   mk.index,
				Text:    TooltipText(mk.record, sel),
				X:       Num(x),
				Y:       Num(y),
			}
		})
		mk.On(EventLeave, id, func(time.Time) {
			b.tip.Visible = false
		})
	}
	b.binding = id
	return id
}

// Dispatch delivers ev to marker index under binding and returns the
// resulting tooltip.
func (b *Binder) Dispatch(m *Markers, index int, ev Event, binding string, now time.Time) (TooltipFrame, error) {
	mk, ok := m.At(index)
	if !ok {
		return b.tip, eris.Wrapf(ErrNoMarker, "index %d", index)
	}
	if err := mk.Dispatch(ev, binding, now); err != nil {
		return b.tip, err
	}
	return b.tip, nil
}
