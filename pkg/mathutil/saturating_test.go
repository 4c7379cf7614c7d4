package mathutil

import (
	"math"
	"testing"
)

func TestSaturatingMul(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int64
		expected int64
	}{
		{"Small product", 6, 7, 42},
		{"Zero left", 0, 100, 0},
		{"Zero right", 100, 0, 0},
		{"Negative treated as zero", -3, 5, 0},
		{"Exact max", math.MaxInt64, 1, math.MaxInt64},
		{"Overflow clamps", math.MaxInt64 / 2, 3, math.MaxInt64},
		{"Large but fits", 1 << 31, 1 << 31, 1 << 62},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SaturatingMul(tt.a, tt.b); got != tt.expected {
				t.Errorf("SaturatingMul(%d, %d) = %d, expected %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestSaturatingPow2(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected int64
	}{
		{"Zero exponent", 0, 1},
		{"Negative exponent", -4, 1},
		{"Ten", 10, 1024},
		{"Largest exact", 62, 1 << 62},
		{"Sign bit clamps", 63, math.MaxInt64},
		{"Far beyond", 500, math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SaturatingPow2(tt.n); got != tt.expected {
				t.Errorf("SaturatingPow2(%d) = %d, expected %d", tt.n, got, tt.expected)
			}
		})
	}
}
