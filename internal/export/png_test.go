package export

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/state-scatter/internal/chart"
	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scene"
)

var twoStates = []model.StateRecord{
	{State: "Ohio", Abbr: "OH", Poverty: 10, Age: 40, Income: 50000, Healthcare: 5, Smokes: 20, Obesity: 30},
	{State: "Utah", Abbr: "UT", Poverty: 5, Age: 30, Income: 60000, Healthcare: 2, Smokes: 10, Obesity: 20},
}

func TestWritePNG(t *testing.T) {
	now := time.Unix(0, 0)
	c := chart.New(twoStates, scene.DefaultLayout(), now)
	c.Click(model.FieldIncome, now)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, c.Frame(now)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 920, img.Bounds().Dx())
	assert.Equal(t, 900, img.Bounds().Dy())
}

func TestWritePNG_NothingToPlot(t *testing.T) {
	now := time.Unix(0, 0)
	records := []model.StateRecord{{State: "Bad", Abbr: "BD", Poverty: math.NaN(), Healthcare: 1}}
	c := chart.New(records, scene.DefaultLayout(), now)

	var buf bytes.Buffer
	err := WritePNG(&buf, c.Frame(now))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no plottable markers")
}

func TestAxis(t *testing.T) {
	a := axis(scene.AxisFrame{Domain: [2]scene.Num{4, 12}}, model.FieldPoverty)
	assert.Equal(t, "In Poverty (%)", a.name)
	require.NotNil(t, a.rng)
	assert.Equal(t, 4.0, a.rng.Min)
	assert.Equal(t, 12.0, a.rng.Max)
	require.Len(t, a.ticks, 9)
	assert.Equal(t, "4", a.ticks[0].Label)

	flat := axis(scene.AxisFrame{Domain: [2]scene.Num{0, 0}}, model.FieldSmokes)
	assert.Equal(t, -1.0, flat.rng.Min)
	assert.Equal(t, 1.0, flat.rng.Max)

	broken := axis(scene.AxisFrame{Domain: [2]scene.Num{scene.Num(math.NaN()), scene.Num(math.NaN())}}, model.FieldAge)
	assert.Nil(t, broken.rng)
	assert.Empty(t, broken.ticks)
}
