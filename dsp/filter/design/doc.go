// Package design turns filter specifications into coefficients.
//
// A [Spec] is a tagged variant: [Kind] selects FIR (windowed sinc) or IIR
// (Butterworth cascade, second-order notch) and [Role] selects high-pass,
// low-pass or notch. [Design] validates the spec and returns [Coefficients]
// carrying the transfer function B(z)/A(z) and, for IIR designs, the
// second-order sections it was built from.
//
// [FIRBank] and [IIRBank] return the ECG cleaning filters in cascade order:
// 1 Hz high-pass for baseline wander, 50 Hz notch for mains hum and 100 Hz
// low-pass for broadband noise.
//
// All functions are pure.
package design
