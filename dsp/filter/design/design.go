package design

import (
	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ecg/dsp/window"
)

// Option configures FIR design.
type Option func(*config)

type config struct {
	window     window.Type
	windowOpts []window.Option
}

func defaultConfig() config {
	return config{window: window.TypeHamming}
}

// WithWindow selects the taper applied to the ideal sinc response of FIR
// designs. Default is Hamming.
func WithWindow(t window.Type, opts ...window.Option) Option {
	return func(c *config) {
		c.window = t
		c.windowOpts = opts
	}
}

// Design validates spec and computes its coefficients.
func Design(spec Spec, opts ...Option) (Coefficients, error) {
	if err := spec.validate(); err != nil {
		return Coefficients{}, err
	}

	cfg := defaultConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	out := Coefficients{
		Kind:       spec.Kind,
		Role:       spec.Role,
		SampleRate: spec.SampleRate,
	}

	if spec.Kind == KindFIR {
		nyquist := spec.SampleRate / 2
		var bands [][2]float64
		switch spec.Role {
		case RoleHighPass:
			bands = [][2]float64{{spec.Cutoffs[0] / nyquist, 1}}
		case RoleLowPass:
			bands = [][2]float64{{0, spec.Cutoffs[0] / nyquist}}
		case RoleNotch:
			bands = [][2]float64{{0, spec.Cutoffs[0] / nyquist}, {spec.Cutoffs[1] / nyquist, 1}}
		}

		out.B = windowedSinc(spec.Order, bands, cfg)
		out.A = []float64{1}
		return out, nil
	}

	switch spec.Role {
	case RoleHighPass:
		out.Sections = ButterworthHP(spec.Cutoffs[0], spec.Order, spec.SampleRate)
	case RoleLowPass:
		out.Sections = ButterworthLP(spec.Cutoffs[0], spec.Order, spec.SampleRate)
	case RoleNotch:
		out.Sections = []biquad.Coefficients{Notch(spec.Cutoffs[0], spec.Q, spec.SampleRate)}
	}
	if err := checkStable(out.Sections); err != nil {
		return Coefficients{}, err
	}
	out.B, out.A = biquad.Expand(out.Sections)

	return out, nil
}

// checkStable rejects cascades with a pole on or outside the unit circle,
// which the bilinear transform only produces for cutoffs at the limits of
// floating-point resolution.
func checkStable(sections []biquad.Coefficients) error {
	for i := range sections {
		if !sections[i].IsStable() {
			return core.NewParamError("design", "section", i,
				"has poles on or outside the unit circle", core.ErrInvalidCutoff)
		}
	}
	return nil
}

// FIRHighPass designs a windowed-sinc high-pass at DefaultHighPassHz.
func FIRHighPass(taps int, sampleRate float64, opts ...Option) (Coefficients, error) {
	return Design(Spec{
		Kind:       KindFIR,
		Role:       RoleHighPass,
		Order:      taps,
		Cutoffs:    []float64{DefaultHighPassHz},
		SampleRate: sampleRate,
	}, opts...)
}

// FIRLowPass designs a windowed-sinc low-pass at DefaultLowPassHz.
func FIRLowPass(taps int, sampleRate float64, opts ...Option) (Coefficients, error) {
	return Design(Spec{
		Kind:       KindFIR,
		Role:       RoleLowPass,
		Order:      taps,
		Cutoffs:    []float64{DefaultLowPassHz},
		SampleRate: sampleRate,
	}, opts...)
}

// FIRNotch designs a windowed-sinc band-stop over
// [DefaultNotchLowHz, DefaultNotchHighHz].
func FIRNotch(taps int, sampleRate float64, opts ...Option) (Coefficients, error) {
	return Design(Spec{
		Kind:       KindFIR,
		Role:       RoleNotch,
		Order:      taps,
		Cutoffs:    []float64{DefaultNotchLowHz, DefaultNotchHighHz},
		SampleRate: sampleRate,
	}, opts...)
}

// IIRHighPass designs a Butterworth high-pass at DefaultHighPassHz.
func IIRHighPass(order int, sampleRate float64) (Coefficients, error) {
	return Design(Spec{
		Kind:       KindIIR,
		Role:       RoleHighPass,
		Order:      order,
		Cutoffs:    []float64{DefaultHighPassHz},
		SampleRate: sampleRate,
	})
}

// IIRLowPass designs a Butterworth low-pass at DefaultLowPassHz.
func IIRLowPass(order int, sampleRate float64) (Coefficients, error) {
	return Design(Spec{
		Kind:       KindIIR,
		Role:       RoleLowPass,
		Order:      order,
		Cutoffs:    []float64{DefaultLowPassHz},
		SampleRate: sampleRate,
	})
}

// IIRNotch designs a second-order notch at DefaultNotchHz with DefaultNotchQ.
func IIRNotch(sampleRate float64) (Coefficients, error) {
	return Design(Spec{
		Kind:       KindIIR,
		Role:       RoleNotch,
		Order:      2,
		Cutoffs:    []float64{DefaultNotchHz},
		Q:          DefaultNotchQ,
		SampleRate: sampleRate,
	})
}

// FIRBank returns the FIR cleaning filters in cascade order: high-pass,
// notch, low-pass.
func FIRBank(taps int, sampleRate float64, opts ...Option) ([]Coefficients, error) {
	return bank(
		func() (Coefficients, error) { return FIRHighPass(taps, sampleRate, opts...) },
		func() (Coefficients, error) { return FIRNotch(taps, sampleRate, opts...) },
		func() (Coefficients, error) { return FIRLowPass(taps, sampleRate, opts...) },
	)
}

// IIRBank returns the IIR cleaning filters in cascade order: high-pass,
// notch, low-pass.
func IIRBank(order int, sampleRate float64) ([]Coefficients, error) {
	return bank(
		func() (Coefficients, error) { return IIRHighPass(order, sampleRate) },
		func() (Coefficients, error) { return IIRNotch(sampleRate) },
		func() (Coefficients, error) { return IIRLowPass(order, sampleRate) },
	)
}

func bank(designers ...func() (Coefficients, error)) ([]Coefficients, error) {
	out := make([]Coefficients, 0, len(designers))
	for _, d := range designers {
		c, err := d()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

