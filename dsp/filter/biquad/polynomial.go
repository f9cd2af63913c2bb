package biquad

// Expand multiplies the sections of a cascade into a single transfer
// function B(z)/A(z). Trailing coefficients that are zero in both
// polynomials are dropped, so an odd-order cascade ending in a first-order
// section yields order+1 coefficients. A[0] is 1.
func Expand(sections []Coefficients) (b, a []float64) {
	b = []float64{1}
	a = []float64{1}
	for _, s := range sections {
		b = polyMul(b, []float64{s.B0, s.B1, s.B2})
		a = polyMul(a, []float64{1, s.A1, s.A2})
	}

	for len(b) > 1 && len(a) > 1 && b[len(b)-1] == 0 && a[len(a)-1] == 0 {
		b = b[:len(b)-1]
		a = a[:len(a)-1]
	}

	return b, a
}

// polyMul returns the coefficients of p(z^-1)*q(z^-1).
func polyMul(p, q []float64) []float64 {
	out := make([]float64, len(p)+len(q)-1)
	for i, pv := range p {
		if pv == 0 {
			continue
		}
		for j, qv := range q {
			out[i+j] += pv * qv
		}
	}
	return out
}
