package motion

import (
	"errors"
	"math"
)

// ErrNoFit reports that the given samples cannot support a stable quadratic
// estimate: fewer than three of them, or a numerically singular system (for
// example a window whose timestamps are all identical). It is an expected
// outcome during the first milliseconds of every gesture, not a failure.
var ErrNoFit = errors.New("no stable quadratic fit")

// singularEps is the determinant magnitude below which the normal-equations
// matrix is treated as singular.
const singularEps = 1e-12

// Quadratic holds the least-squares coefficients of
//
//	y(t) = A*(t-T0)^2 + B*(t-T0) + C
//
// where T0 is the timestamp of the first fitted sample. Fitting in t-T0
// instead of raw t keeps the fourth-power sums small, so the determinant
// stays well conditioned even for timestamps far from zero. A Quadratic is
// immutable; copies may be shared between goroutines freely.
type Quadratic struct {
	A, B, C float64
	T0      int64
}

// Fit fits a degree 2 polynomial to the samples by least squares. It is a
// direct implementation over the normal equations, solved with Cramer's
// rule. Fit is a pure function of its input and keeps no state between
// calls; it returns ErrNoFit when a stable solution does not exist.
func Fit(samples []Sample) (Quadratic, error) {
	n := len(samples)
	if n < 3 {
		return Quadratic{}, ErrNoFit
	}

	t0 := samples[0].T

	var sumT, sumT2, sumT3, sumT4 float64
	var sumY, sumTY, sumT2Y float64

	for _, s := range samples {
		t := float64(s.T - t0)
		t2 := t * t
		t3 := t2 * t
		t4 := t3 * t

		sumT += t
		sumT2 += t2
		sumT3 += t3
		sumT4 += t4

		sumY += s.Y
		sumTY += t * s.Y
		sumT2Y += t2 * s.Y
	}

	// Solve the 3x3 system of normal equations:
	// |   n    sumT   sumT2 | | c |   | sumY  |
	// | sumT   sumT2  sumT3 | | b | = | sumTY |
	// | sumT2  sumT3  sumT4 | | a |   | sumT2Y|

	N := float64(n)
	A := [][]float64{
		{N, sumT, sumT2},
		{sumT, sumT2, sumT3},
		{sumT2, sumT3, sumT4},
	}

	b := []float64{sumY, sumTY, sumT2Y}

	detA := determinant(A)
	if math.Abs(detA) < singularEps {
		return Quadratic{}, ErrNoFit
	}

	var q Quadratic
	q.T0 = t0

	Ac := copyMatrix(A)
	Ac[0][0], Ac[1][0], Ac[2][0] = b[0], b[1], b[2]
	q.C = determinant(Ac) / detA

	Ac = copyMatrix(A)
	Ac[0][1], Ac[1][1], Ac[2][1] = b[0], b[1], b[2]
	q.B = determinant(Ac) / detA

	Ac = copyMatrix(A)
	Ac[0][2], Ac[1][2], Ac[2][2] = b[0], b[1], b[2]
	q.A = determinant(Ac) / detA

	return q, nil
}

func determinant(m [][]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

func copyMatrix(m [][]float64) [][]float64 {
	c := make([][]float64, 3)
	for i := range c {
		c[i] = make([]float64, 3)
		copy(c[i], m[i])
	}
	return c
}

// Eval evaluates the fitted position at timestamp t (absolute milliseconds,
// same clock as the fitted samples).
func (q Quadratic) Eval(t int64) float64 {
	tau := float64(t - q.T0)
	return q.A*tau*tau + q.B*tau + q.C
}

// Velocity evaluates the first derivative of the fit at timestamp t, in
// units per millisecond.
func (q Quadratic) Velocity(t int64) float64 {
	tau := float64(t - q.T0)
	return 2*q.A*tau + q.B
}

// Acceleration returns the second derivative of the fit, constant over the
// whole window, in units per millisecond squared.
func (q Quadratic) Acceleration() float64 {
	return 2 * q.A
}

// RMSE reports the root-mean-square residual of the fit over samples. It is
// a cheap fit-quality hint for display surfaces; zero for an empty slice.
func (q Quadratic) RMSE(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		r := s.Y - q.Eval(s.T)
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(samples)))
}
