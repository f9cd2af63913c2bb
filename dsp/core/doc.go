// Package core holds the value types and error taxonomy shared by the
// signal-processing packages.
//
// A [TimeSeries] is an immutable, uniformly sampled real-valued signal.
// Every transform in this module takes a TimeSeries and returns a new one of
// identical length and sample rate.
//
// Component failures are reported as [*ParamError] values that unwrap to one
// of the sentinel errors ([ErrInvalidOrder], [ErrInvalidCutoff],
// [ErrSignalTooShort], [ErrLengthMismatch], [ErrDegenerateSignal], ...), so
// callers can match them with errors.Is and still print which parameter
// violated which constraint.
package core
