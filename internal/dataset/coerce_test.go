package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"10.5", 10.5},
		{" 12.25 ", 12.25},
		{"-3", -3},
		{"+4", 4},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"2.5E-1", 0.25},
		{"", 0},
		{"   ", 0},
		{"0x1F", 31},
		{"0b101", 5},
		{"0o17", 15},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"1e400", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}
}

func TestParseNumber_NaN(t *testing.T) {
	for _, in := range []string{"n/a", "12%", "1,000", "inf", "NaN", "1_000", "0x", "-0x10", "0xZZ", "infinity", "0x1p-2", "$5"} {
		t.Run(in, func(t *testing.T) {
			assert.True(t, math.IsNaN(ParseNumber(in)), "ParseNumber(%q) should be NaN", in)
		})
	}
}
