package model

// Selection is the pair of fields currently plotted. It is a value: With
// returns a new Selection and never mutates the receiver.
type Selection struct {
	X Field `json:"x" yaml:"x"`
	Y Field `json:"y" yaml:"y"`
}

// DefaultSelection is the selection shown on first render.
func DefaultSelection() Selection {
	return Selection{X: FieldPoverty, Y: FieldHealthcare}
}

// Field returns the selected field for an axis.
func (s Selection) Field(axis Axis) Field {
	if axis == AxisY {
		return s.Y
	}
	return s.X
}

// With returns a copy of s with f selected on f's own axis.
func (s Selection) With(f Field) Selection {
	switch f.Axis() {
	case AxisX:
		s.X = f
	case AxisY:
		s.Y = f
	}
	return s
}

// Active reports whether f is the selected field of its axis.
func (s Selection) Active(f Field) bool {
	return f.Valid() && s.Field(f.Axis()) == f
}
