package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// differenceEquation filters x with
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
//
// from zero initial conditions.
func differenceEquation(c Coefficients, x []float64) []float64 {
	y := make([]float64, len(x))
	var x1, x2, y1, y2 float64
	for n, v := range x {
		y[n] = c.B0*v + c.B1*x1 + c.B2*x2 - c.A1*y1 - c.A2*y2
		x2, x1 = x1, v
		y2, y1 = y1, y[n]
	}
	return y
}

func TestProcessBlock_Impulse(t *testing.T) {
	// x = impulse, B = [0.25 0.5 0.25], A = [1 -0.2 0.04]
	//
	// n=0: y=0.25          d0=0.5+0.05=0.55       d1=0.25-0.01=0.24
	// n=1: y=0.55          d0=0.11+0.24=0.35      d1=-0.022
	// n=2: y=0.35          d0=0.07-0.022=0.048    d1=-0.014
	// n=3: y=0.048
	s := Section{Coefficients: Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}}

	buf := []float64{1, 0, 0, 0}
	s.ProcessBlock(buf)

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		if !almostEqual(buf[i], w, eps) {
			t.Errorf("n=%d: got %.15f, want %.15f", i, buf[i], w)
		}
	}
}

func TestProcessBlock_MatchesDifferenceEquation(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.6, A2: 0.2}
	input := []float64{1, -0.5, 0.25, 0.8, 0, 0, -1, 0.3, 0.3}
	want := differenceEquation(c, input)

	// Two blocks carry the delay line across the split.
	s := Section{Coefficients: c}
	block := append([]float64(nil), input...)
	s.ProcessBlock(block[:4])
	s.ProcessBlock(block[4:])

	for i := range want {
		if !almostEqual(block[i], want[i], eps) {
			t.Errorf("ProcessBlock[%d]=%v, want %v", i, block[i], want[i])
		}
	}
}

func TestSteadyStateForConstantInput(t *testing.T) {
	// With the steady-state delay line for a unit step, the output equals the
	// DC gain from the first sample on.
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.5, A2: 0.3}
	g := c.DCGain()

	// d1 = B2 - A2*g, d0 = B1 - A1*g + d1.
	d1 := c.B2 - c.A2*g
	d0 := c.B1 - c.A1*g + d1

	s := Section{Coefficients: c}
	s.SetState([2]float64{d0, d1})

	buf := make([]float64, 20)
	for i := range buf {
		buf[i] = 1
	}
	s.ProcessBlock(buf)
	for i, y := range buf {
		if !almostEqual(y, g, 1e-12) {
			t.Fatalf("n=%d: y=%v, want %v", i, y, g)
		}
	}
}

func TestDCGain(t *testing.T) {
	first := Coefficients{B0: 0.3, B1: 0.3, A1: -0.4}
	if !almostEqual(first.DCGain(), 1, eps) {
		t.Fatalf("DCGain=%v, want 1", first.DCGain())
	}

	second := Coefficients{B0: 1, B1: -2, B2: 1, A1: -1.8, A2: 0.81}
	if !almostEqual(second.DCGain(), 0, eps) {
		t.Fatalf("highpass DCGain=%v, want 0", second.DCGain())
	}
}
