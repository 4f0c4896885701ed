package smoothing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const sgolayOrder = 2

// savitzkyGolay fits a second order polynomial to each window and takes its
// value at the window centre. The first and last window/2 samples are taken
// from the polynomials fitted to the first and last full window.
func savitzkyGolay(data []float64, window int) ([]float64, error) {
	proj, err := sgolayProjection(window, sgolayOrder)
	if err != nil {
		return nil, err
	}

	n := len(data)
	half := window / 2
	out := make([]float64, n)

	centre := proj.RawRowView(0)
	for i := half; i < n-half; i++ {
		out[i] = floats.Dot(centre, data[i-half:i+half+1])
	}

	var coef mat.VecDense
	coef.MulVec(proj, mat.NewVecDense(window, data[:window]))
	for i := 0; i < half; i++ {
		out[i] = evalPoly(coef.RawVector().Data, scaled(i-half, half))
	}
	coef.MulVec(proj, mat.NewVecDense(window, data[n-window:]))
	for i := n - half; i < n; i++ {
		out[i] = evalPoly(coef.RawVector().Data, scaled(i-(n-window)-half, half))
	}
	return out, nil
}

// sgolayProjection returns the (order+1)×window matrix mapping a window of
// samples to the least squares polynomial coefficients. Positions are scaled
// to [-1, 1] to keep the normal equations well conditioned.
func sgolayProjection(window, order int) (*mat.Dense, error) {
	half := window / 2
	j := mat.NewDense(window, order+1, nil)
	for r := 0; r < window; r++ {
		x := scaled(r-half, half)
		v := 1.0
		for c := 0; c <= order; c++ {
			j.Set(r, c, v)
			v *= x
		}
	}

	var jtj, inv mat.Dense
	jtj.Mul(j.T(), j)
	if err := inv.Inverse(&jtj); err != nil {
		return nil, fmt.Errorf("savitzky-golay window %d: %w", window, err)
	}
	var proj mat.Dense
	proj.Mul(&inv, j.T())
	return &proj, nil
}

func scaled(offset, half int) float64 {
	if half == 0 {
		return float64(offset)
	}
	return float64(offset) / float64(half)
}

func evalPoly(coef []float64, x float64) float64 {
	var y float64
	for i := len(coef) - 1; i >= 0; i-- {
		y = y*x + coef[i]
	}
	return y
}
