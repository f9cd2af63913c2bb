package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrLengthMismatch   = errors.New("conv: buffer length mismatch")
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
)

// directThreshold is the longest kernel Causal convolves in the time domain.
const directThreshold = 64

// directTo writes the leading len(dst) samples of the time-domain
// convolution of a and b into dst.
func directTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}

	m := len(b)
	temp := make([]float64, m)
	for i, x := range a {
		if i >= len(dst) {
			break
		}
		span := min(m, len(dst)-i)
		// dst[i:i+span] += b[:span] * x
		vecmath.ScaleBlock(temp[:span], b[:span], x)
		vecmath.AddBlockInPlace(dst[i:i+span], temp[:span])
	}
}

// Causal returns the first len(signal) samples of signal convolved with
// kernel, i.e. the output of a causal FIR filter with zero initial state.
// Kernels up to 64 taps are convolved directly, longer ones by FFT
// overlap-add.
func Causal(signal, kernel []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(kernel) <= directThreshold {
		out := make([]float64, len(signal))
		directTo(out, signal, kernel)
		return out, nil
	}

	oa, err := NewOverlapAdd(kernel, 0)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(signal))
	if err := oa.ProcessTruncated(out, signal); err != nil {
		return nil, err
	}
	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
