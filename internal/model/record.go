package model

import "math"

// StateRecord is one row of the dataset. Records are never modified after load.
type StateRecord struct {
	State      string  `json:"state" yaml:"state"`
	Abbr       string  `json:"abbr" yaml:"abbr"`
	Poverty    float64 `json:"poverty" yaml:"poverty"`
	Age        float64 `json:"age" yaml:"age"`
	Income     float64 `json:"income" yaml:"income"`
	Healthcare float64 `json:"healthcare" yaml:"healthcare"`
	Smokes     float64 `json:"smokes" yaml:"smokes"`
	Obesity    float64 `json:"obesity" yaml:"obesity"`
}

// Value returns the numeric value of the given field. Unknown fields yield NaN.
func (r StateRecord) Value(f Field) float64 {
	switch f {
	case FieldPoverty:
		return r.Poverty
	case FieldAge:
		return r.Age
	case FieldIncome:
		return r.Income
	case FieldHealthcare:
		return r.Healthcare
	case FieldSmokes:
		return r.Smokes
	case FieldObesity:
		return r.Obesity
	default:
		return math.NaN()
	}
}

// Values collects a field's values across records, in record order.
func Values(records []StateRecord, f Field) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Value(f)
	}
	return out
}
