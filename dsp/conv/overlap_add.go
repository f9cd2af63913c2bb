package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// OverlapAdd implements FFT-based convolution using the overlap-add method.
//
// The input is split into blocks of blockSize samples; each block is
// zero-padded to a power-of-two FFT size of at least blockSize+kernelLen-1,
// multiplied with the kernel spectrum, transformed back and added into the
// output at the block offset.
type OverlapAdd struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	fftSize   int

	plan *algofft.Plan[complex128]

	scratch []complex128
}

// NewOverlapAdd creates an overlap-add convolver for the given kernel.
// If blockSize is 0, a block size is chosen from the kernel length.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize < 0 {
		return nil, ErrInvalidBlockSize
	}

	kernelLen := len(kernel)
	if blockSize == 0 {
		blockSize = max(nextPowerOf2(kernelLen), 256)
	}

	fftSize := nextPowerOf2(blockSize + kernelLen - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	oa := &OverlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: kernelLen,
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		scratch:   make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	if err := plan.Forward(oa.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return oa, nil
}

// ProcessTruncated writes the first len(dst) samples of the linear
// convolution into dst. dst must not be longer than the full result.
func (oa *OverlapAdd) ProcessTruncated(dst, input []float64) error {
	if len(input) == 0 {
		return ErrEmptyInput
	}
	if len(dst) > len(input)+oa.kernelLen-1 {
		return fmt.Errorf("%w: dst %d exceeds full length %d", ErrLengthMismatch, len(dst), len(input)+oa.kernelLen-1)
	}
	for i := range dst {
		dst[i] = 0
	}
	return oa.accumulate(dst, input)
}

// accumulate adds the convolution of input into out, dropping samples past len(out).
func (oa *OverlapAdd) accumulate(out, input []float64) error {
	for start := 0; start < len(input) && start < len(out); start += oa.blockSize {
		end := min(start+oa.blockSize, len(input))

		for i := range oa.scratch {
			oa.scratch[i] = 0
		}
		for i, v := range input[start:end] {
			oa.scratch[i] = complex(v, 0)
		}

		if err := oa.plan.Forward(oa.scratch, oa.scratch); err != nil {
			return fmt.Errorf("conv: forward FFT failed: %w", err)
		}
		for i := range oa.scratch {
			oa.scratch[i] *= oa.kernelFFT[i]
		}
		if err := oa.plan.Inverse(oa.scratch, oa.scratch); err != nil {
			return fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		resultLen := end - start + oa.kernelLen - 1
		for i := 0; i < resultLen && start+i < len(out); i++ {
			out[start+i] += real(oa.scratch[i])
		}
	}
	return nil
}
