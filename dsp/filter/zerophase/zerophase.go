package zerophase

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ecg/dsp/filter/design"
	"github.com/cwbudde/algo-ecg/dsp/filter/fir"
)

const op = "zerophase"

// PadLen returns the number of samples added at each end of the signal
// before filtering c. Signals must be longer than this.
func PadLen(c design.Coefficients) int {
	if len(c.Sections) > 0 {
		return 3 * sectionTaps(c.Sections)
	}
	return 3 * max(len(c.A), len(c.B))
}

// sectionTaps counts the effective taps of a cascade: 2 per section plus
// one, less the trailing coefficients that are zero in every first-order
// section.
func sectionTaps(sections []biquad.Coefficients) int {
	var zeroB2, zeroA2 int
	for _, s := range sections {
		if s.B2 == 0 {
			zeroB2++
		}
		if s.A2 == 0 {
			zeroA2++
		}
	}
	return 2*len(sections) + 1 - min(zeroB2, zeroA2)
}

// Apply filters x forward and backward with c.
func Apply(c design.Coefficients, x core.TimeSeries) (core.TimeSeries, error) {
	if err := check(c, x); err != nil {
		return core.TimeSeries{}, err
	}

	padLen := PadLen(c)
	if x.Len() <= padLen {
		return core.TimeSeries{}, core.NewParamError(op, "length", x.Len(),
			fmt.Sprintf("must exceed %d samples for %s", padLen, c.Label()), core.ErrSignalTooShort)
	}

	ext := oddExtend(x.Samples(), padLen)

	var (
		y   []float64
		err error
	)
	if len(c.Sections) > 0 {
		y, err = filtfiltSections(c.Sections, ext)
	} else {
		y, err = filtfilt(c.B, c.A, ext)
	}
	if err != nil {
		return core.TimeSeries{}, err
	}

	return x.WithSamples(y[padLen : len(y)-padLen])
}

// Cascade applies each filter zero-phase in list order. An empty list
// returns x unchanged.
func Cascade(filters []design.Coefficients, x core.TimeSeries) (core.TimeSeries, error) {
	y := x
	for _, c := range filters {
		var err error
		if y, err = Apply(c, y); err != nil {
			return core.TimeSeries{}, fmt.Errorf("%s: %w", c.Label(), err)
		}
	}
	return y, nil
}

// Forward runs a single causal pass of c over x from a zero state. The output
// carries the filter's phase delay.
func Forward(c design.Coefficients, x core.TimeSeries) (core.TimeSeries, error) {
	if err := check(c, x); err != nil {
		return core.TimeSeries{}, err
	}

	samples := x.Samples()
	switch {
	case len(c.Sections) > 0:
		c.Chain().ProcessBlock(samples)
		return x.WithSamples(samples)
	case c.IsFIR():
		c.FIR().ProcessBlock(samples)
		return x.WithSamples(samples)
	}

	y, err := Filter(c.B, c.A, samples, nil)
	if err != nil {
		return core.TimeSeries{}, err
	}
	return x.WithSamples(y)
}

func check(c design.Coefficients, x core.TimeSeries) error {
	if x.IsZero() {
		return core.NewParamError(op, "length", 0, "must be >= 1", core.ErrEmptySignal)
	}
	if len(c.B) == 0 || len(c.A) == 0 {
		return core.NewParamError(op, "coefficients", c.Label(), "B and A must be non-empty", core.ErrInvalidOrder)
	}
	if c.SampleRate != x.SampleRate() {
		return core.NewParamError(op, "sampleRate", c.SampleRate,
			fmt.Sprintf("filter designed for %g Hz, signal sampled at %g Hz", c.SampleRate, x.SampleRate()),
			core.ErrSampleRateMismatch)
	}
	return nil
}

// oddExtend reflects n samples about each end point:
// 2*x[0]-x[n..1] on the left and 2*x[N-1]-x[N-2..N-n-1] on the right.
func oddExtend(x []float64, n int) []float64 {
	size := len(x)
	out := make([]float64, size+2*n)
	first, last := x[0], x[size-1]
	for i := range n {
		out[i] = 2*first - x[n-i]
		out[size+n+i] = 2*last - x[size-2-i]
	}
	copy(out[n:], x)
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

func scaled(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * s
	}
	return out
}

// filtfilt runs the transfer function B/A forward and backward over ext.
func filtfilt(b, a, ext []float64) ([]float64, error) {
	zi, err := SteadyState(b, a)
	if err != nil {
		return nil, err
	}

	pass := func(x []float64) ([]float64, error) {
		if len(a) == 1 && a[0] == 1 {
			return fir.New(b).Apply(x, scaled(zi, x[0]))
		}
		return Filter(b, a, x, scaled(zi, x[0]))
	}

	y, err := pass(ext)
	if err != nil {
		return nil, err
	}
	reverse(y)
	if y, err = pass(y); err != nil {
		return nil, err
	}
	reverse(y)
	return y, nil
}

// filtfiltSections runs a second-order-section cascade forward and backward
// over ext.
func filtfiltSections(sections []biquad.Coefficients, ext []float64) ([]float64, error) {
	zis := make([][2]float64, len(sections))
	scale := 1.0
	for i, s := range sections {
		zi, err := SteadyState([]float64{s.B0, s.B1, s.B2}, []float64{1, s.A1, s.A2})
		if err != nil {
			return nil, err
		}
		zis[i] = [2]float64{scale * zi[0], scale * zi[1]}
		scale *= s.DCGain()
	}

	chain := biquad.NewChain(sections)
	states := make([][2]float64, len(sections))
	pass := func(x []float64) {
		x0 := x[0]
		for i, zi := range zis {
			states[i] = [2]float64{zi[0] * x0, zi[1] * x0}
		}
		chain.SetState(states)
		chain.ProcessBlock(x)
	}

	y := append([]float64(nil), ext...)
	pass(y)
	reverse(y)
	pass(y)
	reverse(y)
	return y, nil
}
