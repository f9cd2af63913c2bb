// Package conv provides the linear convolution kernel behind FIR filtering.
//
// [Causal] returns the first len(signal) samples of a convolution, which is
// what a causal FIR pass needs. Short kernels are convolved in the time
// domain; long ones go through an FFT [OverlapAdd] convolver.
package conv
