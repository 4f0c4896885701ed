package dva

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Differentiate returns dV/dt divided by the current at the end of every
// interval. The result has one element less than t. A zero current gives an
// infinite or NaN value which is passed on to the caller.
//
// It panics if the slices differ in length.
func Differentiate(t, voltage, current []float64) []float64 {
	mustSameLength(t, voltage, current)
	if len(t) < 2 {
		return []float64{}
	}
	out := make([]float64, len(t)-1)
	for i := range out {
		dv := (voltage[i+1] - voltage[i]) / (t[i+1] - t[i])
		out[i] = dv / current[i+1]
	}
	return out
}

// Reciprocal returns 1/x for every element, turning a DVA into an ICA curve.
func Reciprocal(curve []float64) []float64 {
	out := make([]float64, len(curve))
	for i, v := range curve {
		out[i] = 1 / v
	}
	return out
}

// CumulativeCharge integrates |current| over t with the trapezoidal rule.
// The result has the same length as t and starts at zero. With t in seconds
// and current in amperes the charge is in coulomb (As).
func CumulativeCharge(t, current []float64) []float64 {
	mustSameLength(t, current)
	out := make([]float64, len(t))
	for i := 1; i < len(t); i++ {
		out[i] = out[i-1] + (math.Abs(current[i-1])+math.Abs(current[i]))*(t[i]-t[i-1])/2
	}
	return out
}

// StateOfCharge maps accumulated charge to the fraction still to come:
// 1 at the first sample and 0 at the last.
func StateOfCharge(charge []float64) []float64 {
	out := make([]float64, len(charge))
	if len(charge) == 0 {
		return out
	}
	last := charge[len(charge)-1]
	total := last - charge[0]
	for i, q := range charge {
		out[i] = (last - q) / total
	}
	return out
}

// NormaliseByCharge scales the curve by the total charge throughput.
func NormaliseByCharge(curve, charge []float64) []float64 {
	out := make([]float64, len(curve))
	copy(out, curve)
	if len(charge) == 0 {
		return out
	}
	floats.Scale(charge[len(charge)-1], out)
	return out
}

func mustSameLength(s []float64, others ...[]float64) {
	for _, o := range others {
		if len(o) != len(s) {
			panic("dva: slice lengths differ")
		}
	}
}
