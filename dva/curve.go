package dva

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

const (
	// Voltage at these fractions of the series decides the direction.
	startFraction = 0.2
	endFraction   = 0.8

	// Leading samples of a derivative left out of the noise estimate.
	edgeSamples = 2
)

// Curves are the arrays produced by the pipeline before orientation.
type Curves struct {
	DVA      []float64
	DVAQnorm []float64
	ICA      []float64
	Charge   []float64
	SOC      []float64
}

// IsDischarge reports whether the voltage falls between 20% and 80% of the
// series.
func IsDischarge(voltage []float64) bool {
	if len(voltage) == 0 {
		return false
	}
	return voltage[fractionIndex(startFraction, len(voltage))] > voltage[fractionIndex(endFraction, len(voltage))]
}

func fractionIndex(f float64, n int) int {
	return min(int(math.RoundToEven(f*float64(n))), n-1)
}

// Orient returns a copy of c laid out for display. For a discharge the
// charge is reversed so it counts up along the curve. For a charge the DVA
// curves are negated to lie above the axis and the SOC is reversed. The ICA
// curve is never changed.
func Orient(c Curves, voltage []float64) (Curves, bool) {
	out := Curves{
		DVA:      slices.Clone(c.DVA),
		DVAQnorm: slices.Clone(c.DVAQnorm),
		ICA:      slices.Clone(c.ICA),
		Charge:   slices.Clone(c.Charge),
		SOC:      slices.Clone(c.SOC),
	}

	discharge := IsDischarge(voltage)
	if discharge {
		slices.Reverse(out.Charge)
		return out, true
	}
	negate(out.DVA)
	negate(out.DVAQnorm)
	slices.Reverse(out.SOC)
	return out, false
}

func negate(s []float64) {
	for i := range s {
		s[i] = -s[i]
	}
}

// NoiseLevel estimates the signal to noise ratio of a derivative curve in dB
// as 20·log10(|mean/σ|), leaving out the first two samples. A curve without
// variation gives -Inf, one too short to measure gives NaN.
func NoiseLevel(curve []float64) float64 {
	if len(curve) <= edgeSamples {
		return math.NaN()
	}
	mean, variance := stat.PopMeanVariance(curve[edgeSamples:], nil)
	sd := math.Sqrt(variance)
	if sd == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(math.Abs(mean/sd))
}

// CheckNoise turns a noise level into smoothing advice.
func CheckNoise(level, upper, lower float64) []Diagnostic {
	var diags []Diagnostic
	if level > upper {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("possibly too much smoothing (noise level %.3f dB above %.3f dB), try with less smoothing for more accurate results", level, upper),
		})
	}
	if level < lower {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("possibly not enough smoothing (noise level %.3f dB below %.3f dB), try with more smoothing or a bigger output size", level, lower),
		})
	}
	return diags
}
