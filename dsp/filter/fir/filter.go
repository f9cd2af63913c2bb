package fir

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/conv"
)

// Filter implements a direct-form FIR filter using a circular-buffer delay line.
type Filter struct {
	coeffs []float64
	delay  []float64
	pos    int
}

// New creates a FIR filter from the given taps. The taps are copied.
func New(coeffs []float64) *Filter {
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return &Filter{
		coeffs: c,
		delay:  make([]float64, len(coeffs)),
	}
}

// ProcessSample filters one input sample.
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}
	f.delay[f.pos] = x
	var y float64
	p := f.pos
	for k := range n {
		y += f.coeffs[k] * f.delay[p]
		p--
		if p < 0 {
			p = n - 1
		}
	}
	f.pos++
	if f.pos >= n {
		f.pos = 0
	}
	return y
}

// ProcessBlock filters a block of samples in place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Apply filters x as a block and returns a new slice of len(x) samples.
//
// zi is the initial delay-line state in transposed form and may be nil.
// When given it must hold one value less than the tap count; zi[k] is added
// to output k.
// The filter's streaming state is not touched.
func (f *Filter) Apply(x, zi []float64) ([]float64, error) {
	if len(f.coeffs) == 0 {
		return nil, conv.ErrEmptyKernel
	}
	if zi != nil && len(zi) != len(f.coeffs)-1 {
		return nil, fmt.Errorf("fir: %w: initial state has %d values, want %d",
			conv.ErrLengthMismatch, len(zi), len(f.coeffs)-1)
	}

	y, err := conv.Causal(x, f.coeffs)
	if err != nil {
		return nil, err
	}

	for k := 0; k < len(zi) && k < len(y); k++ {
		y[k] += zi[k]
	}

	return y, nil
}
