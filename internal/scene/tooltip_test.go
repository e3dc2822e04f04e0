package scene

import (
	"math"
	"testing"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scale"
)

func TestTooltipText(t *testing.T) {
	tests := []struct {
		name string
		sel  model.Selection
		want string
	}{
		{"default", model.DefaultSelection(), "Ohio<br>Poverty: 10%<br>Lacks Health care: 5%"},
		{"age smokes", model.Selection{X: model.FieldAge, Y: model.FieldSmokes}, "Ohio<br>Age: 40 <br>Smokes: 20%"},
		{"income obesity", model.Selection{X: model.FieldIncome, Y: model.FieldObesity}, "Ohio<br>Household Income: $50000 <br>Obesity: 30%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TooltipText(twoStates[0], tt.sel))
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "10.5", FormatValue(10.5))
	assert.Equal(t, "0.1", FormatValue(0.1))
	assert.Equal(t, "-3", FormatValue(-3))
	assert.Equal(t, "NaN", FormatValue(math.NaN()))
	assert.Equal(t, "Infinity", FormatValue(math.Inf(1)))
	assert.Equal(t, "-Infinity", FormatValue(math.Inf(-1)))
	assert.Equal(t, "0", FormatValue(math.Copysign(0, -1)))
}

func TestFormatValue_ExponentForm(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1e21, "1e+21"},
		{-2.5e22, "-2.5e+22"},
		{1e-7, "1e-7"},
		{1.5e-7, "1.5e-7"},
		{999999999999999900000, "999999999999999900000"},
		{0.000001, "0.000001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in), "%g", tt.in)
	}
}

func boundScene(t *testing.T) (*Markers, *Binder, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	l := DefaultLayout()
	m := NewMarkers(twoStates, l)
	sel := model.DefaultSelection()
	RenderMarkers(m, scale.Build(twoStates, sel.X, l.Width, false), scale.Build(twoStates, sel.Y, l.Height, true), sel, clk.Now())
	return m, NewBinder(), clk
}

func TestBinder_EnterLeave(t *testing.T) {
	m, b, clk := boundScene(t)
	id := b.Bind(m, model.DefaultSelection())
	require.NotEmpty(t, id)
	assert.Equal(t, id, b.Binding())
	assert.False(t, b.Tooltip().Visible)

	tip, err := b.Dispatch(m, 1, EventEnter, id, clk.Now())
	require.NoError(t, err)
	assert.True(t, tip.Visible)
	assert.Equal(t, 1, tip.Index)
	assert.Equal(t, "Utah<br>Poverty: 5%<br>Lacks Health care: 2%", tip.Text)

	utah, _ := m.At(1)
	ux, uy := utah.Position(clk.Now())
	assert.Equal(t, Num(ux), tip.X)
	assert.Equal(t, Num(uy), tip.Y)

	tip, err = b.Dispatch(m, 1, EventLeave, id, clk.Now())
	require.NoError(t, err)
	assert.False(t, tip.Visible)
}

func TestBinder_RebindDetachesOldHandlers(t *testing.T) {
	m, b, clk := boundScene(t)
	old := b.Bind(m, model.DefaultSelection())
	next := b.Bind(m, model.Selection{X: model.FieldAge, Y: model.FieldHealthcare})
	assert.NotEqual(t, old, next)

	for i := 0; i < m.Len(); i++ {
		mk, _ := m.At(i)
		assert.Equal(t, 2, mk.Handlers(), "one handler per event")
	}

	_, err := b.Dispatch(m, 0, EventEnter, old, clk.Now())
	assert.ErrorIs(t, err, ErrDetached)
	assert.False(t, b.Tooltip().Visible)

	tip, err := b.Dispatch(m, 0, EventEnter, next, clk.Now())
	require.NoError(t, err)
	assert.Equal(t, "Ohio<br>Age: 40 <br>Lacks Health care: 5%", tip.Text)
}

func TestBinder_UnknownMarker(t *testing.T) {
	m, b, clk := boundScene(t)
	id := b.Bind(m, model.DefaultSelection())
	_, err := b.Dispatch(m, 7, EventEnter, id, clk.Now())
	assert.ErrorIs(t, err, ErrNoMarker)
}
