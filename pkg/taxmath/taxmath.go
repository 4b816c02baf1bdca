// Package taxmath is the rounding kernel for all tax arithmetic.
//
// Tax forms carry dollar-and-cent amounts, and floating point math
// (0.1 + 0.2) is dangerous if intermediates are allowed to drift. Every
// add/subtract/multiply result is rounded to cents before it leaves this
// package, so no un-rounded intermediate ever crosses a function boundary.
package taxmath

import "math"

// Round rounds to 2 decimal places using round-half-up on the computed
// float64 (round(x*100)/100). Not banker's rounding and not fixed-point:
// half-cents round toward positive infinity.
func Round(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

// Add sums any number of amounts and rounds the result. Variadic because
// many call sites sum an arbitrary number of sourced amounts (all W-2
// wages, all withholding boxes).
func Add(nums ...float64) float64 {
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return Round(sum)
}

// Sub returns a-b rounded to cents.
func Sub(a, b float64) float64 {
	return Round(a - b)
}

// Mul returns a*b rounded to cents.
func Mul(a, b float64) float64 {
	return Round(a * b)
}

// Max passes through unrounded; callers round separately if needed.
func Max(a, b float64) float64 {
	return math.Max(a, b)
}

// Min passes through unrounded; callers round separately if needed.
func Min(a, b float64) float64 {
	return math.Min(a, b)
}
