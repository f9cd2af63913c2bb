// Package biquad provides the second-order section (SOS) runtime used by the
// IIR filters.
//
// A [Section] runs Direct Form II Transposed recursion for one second-order
// section described by [Coefficients]. Higher-order Butterworth designs are
// cascaded through a [Chain]. [Expand] folds a cascade back into a single
// numerator/denominator pair for reporting and frequency analysis.
//
// Coefficient design lives in dsp/filter/design.
package biquad
