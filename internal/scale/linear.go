// Package scale maps field values onto pixel coordinates.
package scale

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/sells-group/state-scatter/internal/model"
)

// Domain padding applied to the data extent.
const (
	MinFactor = 0.8
	MaxFactor = 1.2
)

// Linear is a continuous linear mapping from Domain onto Range.
type Linear struct {
	Domain [2]float64 `json:"domain" yaml:"domain"`
	Range  [2]float64 `json:"range" yaml:"range"`
}

// New returns a scale over the given domain and range.
func New(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Build computes the scale for one field over the whole dataset: domain
// [0.8*min, 1.2*max], range [0, extent], or [extent, 0] when inverted (y
// axis, where pixel rows grow downward). NaN values are skipped when
// finding the extent; if no value remains the domain is [NaN, NaN].
// Equal or zero extents are not special-cased.
func Build(records []model.StateRecord, f model.Field, extent float64, inverted bool) Linear {
	lo, hi := Extent(model.Values(records, f))
	r0, r1 := 0.0, extent
	if inverted {
		r0, r1 = extent, 0
	}
	return New(lo*MinFactor, hi*MaxFactor, r0, r1)
}

// Extent returns the minimum and maximum of the non-NaN values, or NaN, NaN
// when there are none.
func Extent(values []float64) (lo, hi float64) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(clean), floats.Max(clean)
}

// Apply maps a domain value to the range. A zero-width domain maps every
// value to the middle of the range.
func (s Linear) Apply(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	span := d1 - d0
	var t float64
	switch {
	case math.IsNaN(span):
		return math.NaN()
	case span == 0:
		t = 0.5
	default:
		t = (v - d0) / span
	}
	return r0 + t*(r1-r0)
}

// Invert maps a range value back to the domain.
func (s Linear) Invert(px float64) float64 {
	return New(s.Range[0], s.Range[1], s.Domain[0], s.Domain[1]).Apply(px)
}

// Equal reports whether two scales map identically. NaN bounds compare equal
// to NaN so that rebuilding a broken scale is still a no-op.
func (s Linear) Equal(o Linear) bool {
	for i := 0; i < 2; i++ {
		if !sameFloat(s.Domain[i], o.Domain[i]) || !sameFloat(s.Range[i], o.Range[i]) {
			return false
		}
	}
	return true
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
