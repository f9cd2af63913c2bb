package zerophase

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// normalize pads b and a to a common length and divides both by a[0].
func normalize(b, a []float64) (nb, na []float64, err error) {
	if len(a) == 0 || a[0] == 0 {
		return nil, nil, core.NewParamError(op, "a[0]", a, "leading denominator coefficient must be non-zero", core.ErrInvalidOrder)
	}
	if len(b) == 0 {
		return nil, nil, core.NewParamError(op, "b", b, "must be non-empty", core.ErrInvalidOrder)
	}

	n := max(len(a), len(b))
	nb = make([]float64, n)
	na = make([]float64, n)
	for i, v := range b {
		nb[i] = v / a[0]
	}
	for i, v := range a {
		na[i] = v / a[0]
	}
	return nb, na, nil
}

// SteadyState returns the Direct Form II Transposed delay-line state of B/A
// after a unit step has settled, i.e. the initial condition for which a
// constant input of 1 produces a constant output from the first sample.
// The result has max(len(a), len(b)) - 1 values.
//
// It solves (I - C^T) zi = b[1:] - a[1:]*b[0], with C the companion matrix
// of a.
func SteadyState(b, a []float64) ([]float64, error) {
	nb, na, err := normalize(b, a)
	if err != nil {
		return nil, err
	}

	m := len(na) - 1
	if m == 0 {
		return []float64{}, nil
	}

	lhs := mat.NewDense(m, m, nil)
	for i := range m {
		// Column 0 of C^T is the first row of C: -a[1:].
		lhs.Set(i, 0, na[i+1])
		if i+1 < m {
			lhs.Set(i, i+1, -1)
		}
		lhs.Set(i, i, lhs.At(i, i)+1)
	}

	rhs := mat.NewVecDense(m, nil)
	for i := range m {
		rhs.SetVec(i, nb[i+1]-na[i+1]*nb[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(lhs, rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("zerophase: steady state: %w", err)
		}
	}

	out := make([]float64, m)
	for i := range out {
		out[i] = zi.AtVec(i)
	}
	return out, nil
}

// Filter runs B/A over x in Direct Form II Transposed and returns a new
// slice. zi is the initial delay-line state (max(len(a), len(b)) - 1 values)
// or nil for a zero state.
func Filter(b, a, x, zi []float64) ([]float64, error) {
	nb, na, err := normalize(b, a)
	if err != nil {
		return nil, err
	}

	n := len(nb)
	z := make([]float64, n)
	if zi != nil {
		if len(zi) != n-1 {
			return nil, core.NewParamError(op, "zi", len(zi), fmt.Sprintf("must hold %d values", n-1), core.ErrLengthMismatch)
		}
		copy(z, zi)
	}

	y := make([]float64, len(x))
	for k, v := range x {
		out := nb[0]*v + z[0]
		for i := 0; i < n-1; i++ {
			z[i] = nb[i+1]*v + z[i+1] - na[i+1]*out
		}
		y[k] = out
	}
	return y, nil
}
