// Package mathutil provides integer helpers that clamp instead of overflowing.
package mathutil

import "math"

// SaturatingMul multiplies two non-negative values, returning math.MaxInt64
// when the product does not fit. Negative inputs are treated as zero.
func SaturatingMul(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

// SaturatingPow2 returns 2^n, or math.MaxInt64 once n reaches 63.
func SaturatingPow2(n int) int64 {
	if n <= 0 {
		return 1
	}
	if n >= 63 {
		return math.MaxInt64
	}
	return int64(1) << uint(n)
}
