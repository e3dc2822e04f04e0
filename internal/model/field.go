package model

import "strings"

// Axis identifies one of the two plot axes.
type Axis string

// Plot axes.
const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Field names one of the six numeric indicators that can be plotted.
type Field string

// Selectable fields. The first three belong to the x axis, the rest to y.
const (
	FieldPoverty    Field = "poverty"
	FieldAge        Field = "age"
	FieldIncome     Field = "income"
	FieldHealthcare Field = "healthcare"
	FieldSmokes     Field = "smokes"
	FieldObesity    Field = "obesity"
)

// FieldMeta describes how a field is plotted and labelled.
type FieldMeta struct {
	Field   Field  `json:"field" yaml:"field"`
	Axis    Axis   `json:"axis" yaml:"axis"`
	Caption string `json:"caption" yaml:"caption"`
	Label   string `json:"label" yaml:"label"`   // tooltip prefix, e.g. "Poverty: "
	Suffix  string `json:"suffix" yaml:"suffix"` // tooltip unit, e.g. "%"
}

// fieldCatalog is ordered: captions render in this order per axis.
var fieldCatalog = []FieldMeta{
	{Field: FieldPoverty, Axis: AxisX, Caption: "In Poverty (%)", Label: "Poverty: ", Suffix: "%"},
	{Field: FieldAge, Axis: AxisX, Caption: "Age(Median)", Label: "Age: ", Suffix: " "},
	{Field: FieldIncome, Axis: AxisX, Caption: "Household Income(Median)", Label: "Household Income: $", Suffix: " "},
	{Field: FieldHealthcare, Axis: AxisY, Caption: "Lacks Health care(%)", Label: "Lacks Health care: ", Suffix: "%"},
	{Field: FieldSmokes, Axis: AxisY, Caption: "Smokes(%)", Label: "Smokes: ", Suffix: "%"},
	{Field: FieldObesity, Axis: AxisY, Caption: "Obese(%)", Label: "Obesity: ", Suffix: "%"},
}

var fieldsByName = func() map[Field]FieldMeta {
	m := make(map[Field]FieldMeta, len(fieldCatalog))
	for _, f := range fieldCatalog {
		m[f.Field] = f
	}
	return m
}()

// Fields returns the metadata of all six fields in caption order.
func Fields() []FieldMeta {
	out := make([]FieldMeta, len(fieldCatalog))
	copy(out, fieldCatalog)
	return out
}

// FieldsFor returns the three fields belonging to an axis, in caption order.
func FieldsFor(axis Axis) []FieldMeta {
	var out []FieldMeta
	for _, f := range fieldCatalog {
		if f.Axis == axis {
			out = append(out, f)
		}
	}
	return out
}

// ParseField resolves a field name, ignoring case and surrounding space.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	_, ok := fieldsByName[f]
	return f, ok
}

// Meta returns the field's metadata. Unknown fields yield a zero FieldMeta.
func (f Field) Meta() FieldMeta {
	return fieldsByName[f]
}

// Axis returns the axis the field belongs to, or "" for unknown fields.
func (f Field) Axis() Axis {
	return fieldsByName[f].Axis
}

// Valid reports whether f is one of the six known fields.
func (f Field) Valid() bool {
	_, ok := fieldsByName[f]
	return ok
}

func (f Field) String() string {
	return string(f)
}
