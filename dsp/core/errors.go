package core

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure returned by the signal-processing packages
// wraps exactly one of these.
var (
	ErrInvalidOrder       = errors.New("invalid filter order")
	ErrInvalidCutoff      = errors.New("invalid cutoff frequency")
	ErrSignalTooShort     = errors.New("signal too short")
	ErrLengthMismatch     = errors.New("length mismatch")
	ErrDegenerateSignal   = errors.New("degenerate signal")
	ErrInvalidSampleRate  = errors.New("invalid sample rate")
	ErrInvalidAmplitude   = errors.New("invalid amplitude")
	ErrInvalidQ           = errors.New("invalid quality factor")
	ErrInvalidPoints      = errors.New("invalid point count")
	ErrSampleRateMismatch = errors.New("sample rate mismatch")
	ErrEmptySignal        = errors.New("empty signal")
	ErrInvalidDuration    = errors.New("invalid duration")
)

// ParamError describes a violated precondition: which operation rejected
// which parameter value, and the constraint it broke.
type ParamError struct {
	Op         string
	Param      string
	Value      any
	Constraint string
	Err        error
}

// NewParamError returns a ParamError wrapping err.
func NewParamError(op, param string, value any, constraint string, err error) *ParamError {
	return &ParamError{Op: op, Param: param, Value: value, Constraint: constraint, Err: err}
}

func (e *ParamError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("%s: %s=%v: %v", e.Op, e.Param, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %s=%v %s: %v", e.Op, e.Param, e.Value, e.Constraint, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }
