package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ecg/dsp/filter/fir"
)

// Kind selects the filter family.
type Kind int

const (
	KindFIR Kind = iota
	KindIIR
)

func (k Kind) String() string {
	switch k {
	case KindFIR:
		return "FIR"
	case KindIIR:
		return "IIR"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Role selects the frequency-selective behavior.
type Role int

const (
	RoleHighPass Role = iota
	RoleLowPass
	RoleNotch
)

func (r Role) String() string {
	switch r {
	case RoleHighPass:
		return "High-Pass"
	case RoleLowPass:
		return "Low-Pass"
	case RoleNotch:
		return "Notch"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Default corner frequencies of the ECG cleaning filters.
const (
	DefaultHighPassHz  = 1.0
	DefaultLowPassHz   = 100.0
	DefaultNotchHz     = 50.0
	DefaultNotchLowHz  = 49.0
	DefaultNotchHighHz = 51.0
	DefaultNotchQ      = 30.0
)

// Spec describes a filter to design.
//
// Order is the tap count for FIR filters and the Butterworth order for IIR
// high-pass and low-pass filters; the IIR notch is always second order and
// ignores it. Cutoffs holds one corner frequency in Hz for high-pass and
// low-pass filters, the stop band [low, high] for an FIR notch and the
// center frequency for an IIR notch. Q is only read by the IIR notch.
type Spec struct {
	Kind       Kind
	Role       Role
	Order      int
	Cutoffs    []float64
	Q          float64
	SampleRate float64
}

// Coefficients is a designed filter. B and A are the numerator and
// denominator of B(z)/A(z) in powers of z^-1, with A[0] == 1. FIR designs
// have A == [1]. IIR designs also carry the second-order sections whose
// product is B/A; filtering runs on the sections.
type Coefficients struct {
	Kind       Kind
	Role       Role
	SampleRate float64
	B          []float64
	A          []float64
	Sections   []biquad.Coefficients
}

// Label returns a display name such as "High-Pass FIR".
func (c Coefficients) Label() string {
	return c.Role.String() + " " + c.Kind.String()
}

// Order returns the polynomial order max(len(B), len(A)) - 1.
func (c Coefficients) Order() int {
	return max(len(c.B), len(c.A)) - 1
}

// IsFIR reports whether the filter has no feedback.
func (c Coefficients) IsFIR() bool {
	return len(c.A) == 1 && c.A[0] == 1
}

// FIR returns a streaming runtime for an FIR design.
func (c Coefficients) FIR() *fir.Filter {
	return fir.New(c.B)
}

// Chain returns a streaming runtime for an IIR design.
func (c Coefficients) Chain() *biquad.Chain {
	return biquad.NewChain(c.Sections)
}

// validate checks the spec against the constraints of its kind and role.
func (s Spec) validate() error {
	const op = "design"

	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) || math.IsInf(s.SampleRate, 0) {
		return core.NewParamError(op, "sampleRate", s.SampleRate, "must be > 0", core.ErrInvalidSampleRate)
	}

	switch s.Kind {
	case KindFIR:
		if s.Order <= 0 {
			return core.NewParamError(op, "order", s.Order, "must be > 0", core.ErrInvalidOrder)
		}
		if s.Order%2 == 0 {
			return core.NewParamError(op, "order", s.Order, "must be odd for FIR designs", core.ErrInvalidOrder)
		}
	case KindIIR:
		if s.Role != RoleNotch && s.Order <= 0 {
			return core.NewParamError(op, "order", s.Order, "must be > 0", core.ErrInvalidOrder)
		}
	default:
		return core.NewParamError(op, "kind", s.Kind, "unknown filter kind", core.ErrInvalidOrder)
	}

	if s.Role != RoleHighPass && s.Role != RoleLowPass && s.Role != RoleNotch {
		return core.NewParamError(op, "role", s.Role, "unknown filter role", core.ErrInvalidCutoff)
	}

	wantCutoffs := 1
	if s.Kind == KindFIR && s.Role == RoleNotch {
		wantCutoffs = 2
	}
	if len(s.Cutoffs) != wantCutoffs {
		return core.NewParamError(op, "cutoffs", s.Cutoffs,
			fmt.Sprintf("%s %s needs %d cutoff(s)", s.Role, s.Kind, wantCutoffs), core.ErrInvalidCutoff)
	}

	nyquist := s.SampleRate / 2
	for _, fc := range s.Cutoffs {
		if !(fc > 0 && fc < nyquist) {
			return core.NewParamError(op, "cutoff", fc,
				fmt.Sprintf("must be in (0, %g)", nyquist), core.ErrInvalidCutoff)
		}
	}
	if wantCutoffs == 2 && s.Cutoffs[0] >= s.Cutoffs[1] {
		return core.NewParamError(op, "cutoffs", s.Cutoffs, "band low must be below band high", core.ErrInvalidCutoff)
	}

	if s.Kind == KindIIR && s.Role == RoleNotch {
		if !(s.Q > 0) || math.IsInf(s.Q, 0) {
			return core.NewParamError(op, "q", s.Q, "must be > 0", core.ErrInvalidQ)
		}
	}

	return nil
}
