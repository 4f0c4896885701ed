package smoothing

import (
	"fmt"

	"github.com/TheCacophonyProject/battery-dva/validation"
	"gonum.org/v1/gonum/interp"
)

// SplineKnots is the number of samples the spline method keeps from a series
// of length n when taking every k-th sample starting at index 1.
func SplineKnots(n, k int) int {
	if k < 1 || n < 2 {
		return 0
	}
	return (n-2)/k + 1
}

// subsampledSpline interpolates the samples at 1, 1+k, 1+2k, ... with a
// natural cubic spline and evaluates it at every point of t. Points outside
// the first and last knot follow the cubic of the end segment.
func subsampledSpline(t, data []float64, k int) ([]float64, error) {
	knots := SplineKnots(len(t), k)
	if knots < 2 {
		return nil, validation.New("smoothing_parameter", k, fmt.Sprintf("spline keeps %d of %d samples, at least 2 are needed", knots, len(t)))
	}

	xs := make([]float64, 0, knots)
	ys := make([]float64, 0, knots)
	for i := 1; i < len(t); i += k {
		xs = append(xs, t[i])
		ys = append(ys, data[i])
	}

	var nc interp.NaturalCubic
	if err := nc.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("spline smoothing: %w", err)
	}
	first, last := endPiece(&nc, xs, ys, 0, 1), endPiece(&nc, xs, ys, knots-1, knots-2)
	out := make([]float64, len(t))
	for i, x := range t {
		switch {
		case x < xs[0]:
			out[i] = first(x)
		case x > xs[knots-1]:
			out[i] = last(x)
		default:
			out[i] = nc.Predict(x)
		}
	}
	return out, nil
}

// endPiece returns the cubic of the segment between knots end and next,
// valid beyond knot end. The second derivative of a natural spline is zero
// at its end knots, which leaves y + d·dx + e·dx³.
func endPiece(nc *interp.NaturalCubic, xs, ys []float64, end, next int) func(float64) float64 {
	y, d := ys[end], nc.PredictDerivative(xs[end])
	h := xs[next] - xs[end]
	e := (ys[next] - y - d*h) / (h * h * h)
	return func(x float64) float64 {
		dx := x - xs[end]
		return y + d*dx + e*dx*dx*dx
	}
}
