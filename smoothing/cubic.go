package smoothing

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// smoothingSpline evaluates the cubic smoothing spline of (x, y) at x.
//
// p weights the fit against the curvature penalty: p = 0 gives the linear
// least squares fit and p = 1 the natural interpolating spline. The spline
// values at the knots solve
//
//	(6(1-p) QᵀQ + p R) u = Qᵀy
//	ŷ = y - 6(1-p) Q u
//
// where Qᵀ is the second difference operator and R the tridiagonal spline
// matrix. The system is pentadiagonal and symmetric positive definite.
func smoothingSpline(x, y []float64, p float64) ([]float64, error) {
	n := len(x)
	h := make([]float64, n-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
	}

	m := n - 2
	qt := func(i int) (a, b, c float64) {
		a = 1 / h[i]
		c = 1 / h[i+1]
		return a, -(a + c), c
	}

	w := 6 * (1 - p)
	sys := mat.NewSymBandDense(m, min(2, m-1), nil)
	rhs := make([]float64, m)
	for i := 0; i < m; i++ {
		a, b, c := qt(i)
		sys.SetSymBand(i, i, w*(a*a+b*b+c*c)+p*2*(h[i]+h[i+1]))
		if i+1 < m {
			a1, b1, _ := qt(i + 1)
			sys.SetSymBand(i, i+1, w*(b*a1+c*b1)+p*h[i+1])
		}
		if i+2 < m {
			a2, _, _ := qt(i + 2)
			sys.SetSymBand(i, i+2, w*c*a2)
		}
		rhs[i] = (y[i+2]-y[i+1])/h[i+1] - (y[i+1]-y[i])/h[i]
	}

	var chol mat.BandCholesky
	if ok := chol.Factorize(sys); !ok {
		return nil, errors.New("cubic smoothing: system is not positive definite")
	}
	var u mat.VecDense
	if err := chol.SolveVecTo(&u, mat.NewVecDense(m, rhs)); err != nil {
		return nil, err
	}

	// Q u, padded with the zero end moments of a natural spline.
	moment := func(i int) float64 {
		if i <= 0 || i >= n-1 {
			return 0
		}
		return u.AtVec(i - 1)
	}
	slope := func(k int) float64 {
		if k < 0 || k >= n-1 {
			return 0
		}
		return (moment(k+1) - moment(k)) / h[k]
	}

	out := make([]float64, n)
	for k := range out {
		out[k] = y[k] - w*(slope(k)-slope(k-1))
	}
	return out, nil
}
