package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/design"
)

// DefaultResponsePoints is the grid size used for filter response plots.
const DefaultResponsePoints = 8000

// FrequencyResponse returns |H(e^jw)| of c at w = pi*k/numPoints for
// k = 0 .. numPoints-1, with FreqHz = k*fs/(2*numPoints).
func FrequencyResponse(c design.Coefficients, numPoints int) ([]Point, error) {
	freqs, h, err := ComplexResponse(c, numPoints)
	if err != nil {
		return nil, err
	}

	out := make([]Point, len(h))
	for k := range h {
		out[k] = Point{FreqHz: freqs[k], Magnitude: cmplx.Abs(h[k])}
	}
	return out, nil
}

// ComplexResponse returns the grid frequencies in Hz and H(e^jw) of c on the
// FrequencyResponse grid. IIR designs are evaluated as the product of their
// second-order sections.
func ComplexResponse(c design.Coefficients, numPoints int) ([]float64, []complex128, error) {
	const op = "spectrum"
	if numPoints <= 0 {
		return nil, nil, core.NewParamError(op, "numPoints", numPoints, "must be > 0", core.ErrInvalidPoints)
	}
	if !(c.SampleRate > 0) {
		return nil, nil, core.NewParamError(op, "sampleRate", c.SampleRate, "must be > 0", core.ErrInvalidSampleRate)
	}
	if len(c.B) == 0 || len(c.A) == 0 {
		return nil, nil, core.NewParamError(op, "coefficients", c.Label(), "B and A must be non-empty", core.ErrInvalidOrder)
	}

	var h []complex128
	if len(c.Sections) > 0 {
		chain := c.Chain()
		h = make([]complex128, numPoints)
		for k := range h {
			h[k] = chain.ResponseAt(math.Pi * float64(k) / float64(numPoints))
		}
	} else {
		h = polyResponse(c.B, c.A, numPoints)
	}

	freqs := make([]float64, numPoints)
	step := c.SampleRate / (2 * float64(numPoints))
	for k := range freqs {
		freqs[k] = float64(k) * step
	}
	return freqs, h, nil
}

// polyResponse evaluates B(e^jw)/A(e^jw) at w = pi*k/n. When the grid is at
// least as long as both polynomials the values come from FFTs of the
// polynomials zero-padded to 2n; otherwise each point is summed directly.
func polyResponse(b, a []float64, n int) []complex128 {
	num := polyEval(b, n)
	den := polyEval(a, n)
	out := make([]complex128, n)
	for k := range out {
		out[k] = num[k] / den[k]
	}
	return out
}

func polyEval(p []float64, n int) []complex128 {
	if n >= len(p) {
		padded := make([]float64, 2*n)
		copy(padded, p)
		return fft.FFTReal(padded)[:n]
	}

	out := make([]complex128, n)
	for k := range out {
		w := math.Pi * float64(k) / float64(n)
		var sum complex128
		for i, v := range p {
			sum += complex(v, 0) * cmplx.Exp(complex(0, -w*float64(i)))
		}
		out[k] = sum
	}
	return out
}
