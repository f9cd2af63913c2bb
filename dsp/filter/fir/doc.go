// Package fir provides the FIR filter runtime.
//
// A [Filter] applies tap weights to a stream using a circular-buffer delay
// line. [Filter.Apply] filters a whole block through dsp/conv, which switches
// to FFT overlap-add for long tap counts, and accepts an initial delay-line
// state so zero-phase filtering can start in steady state.
//
// Tap design (windowed sinc) lives in dsp/filter/design.
package fir
