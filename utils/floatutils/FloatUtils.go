// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Argmax returns the index of the maximum value in values. Ties are
// broken in favour of the lowest index. NaN values are ignored.
func Argmax(values []float64) int {
	return floats.MaxIdx(values)
}

// Max returns the maximum value in values. NaN values are ignored.
func Max(values []float64) float64 {
	return floats.Max(values)
}

// Finite returns whether every value is neither NaN nor infinite
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
