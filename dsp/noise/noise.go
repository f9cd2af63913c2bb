package noise

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultPowerLineHz is the mains interference frequency.
	DefaultPowerLineHz = 50.0
	// DefaultBaselineHz is the baseline wander frequency (respiration band).
	DefaultBaselineHz = 0.3
)

// Spec configures the three noise components. Amplitudes must be >= 0.
type Spec struct {
	PowerLineAmplitude float64
	HighFreqAmplitude  float64
	BaselineAmplitude  float64

	// PowerLineHz and BaselineHz default to 50 and 0.3 when zero.
	PowerLineHz float64
	BaselineHz  float64
}

// DefaultSpec returns the reference noise configuration.
func DefaultSpec() Spec {
	return Spec{
		PowerLineAmplitude: 0.2,
		HighFreqAmplitude:  0.05,
		BaselineAmplitude:  0.3,
		PowerLineHz:        DefaultPowerLineHz,
		BaselineHz:         DefaultBaselineHz,
	}
}

// Validate checks amplitude and frequency constraints.
func (s Spec) Validate() error {
	amps := []struct {
		name string
		v    float64
	}{
		{"powerLineAmplitude", s.PowerLineAmplitude},
		{"highFreqAmplitude", s.HighFreqAmplitude},
		{"baselineAmplitude", s.BaselineAmplitude},
	}
	for _, a := range amps {
		if a.v < 0 || !core.IsFinite(a.v) {
			return core.NewParamError("noise", a.name, a.v, "must be >= 0", core.ErrInvalidAmplitude)
		}
	}
	if s.PowerLineHz < 0 {
		return core.NewParamError("noise", "powerLineHz", s.PowerLineHz, "must be > 0", core.ErrInvalidCutoff)
	}
	if s.BaselineHz < 0 {
		return core.NewParamError("noise", "baselineHz", s.BaselineHz, "must be > 0", core.ErrInvalidCutoff)
	}
	return nil
}

func (s Spec) withDefaults() Spec {
	if s.PowerLineHz == 0 {
		s.PowerLineHz = DefaultPowerLineHz
	}
	if s.BaselineHz == 0 {
		s.BaselineHz = DefaultBaselineHz
	}
	return s
}

// Components holds the individual noise signals and their pointwise sum.
type Components struct {
	PowerLine core.TimeSeries
	HighFreq  core.TimeSeries
	Baseline  core.TimeSeries
	Sum       core.TimeSeries
}

// Synthesizer draws noise components on a time grid.
type Synthesizer struct {
	rng *rand.Rand
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects the random source. The Synthesizer takes ownership of r;
// it must not be shared with concurrent users.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) {
		if r != nil {
			s.rng = r
		}
	}
}

// NewSynthesizer returns a Synthesizer. Without options it is seeded with 1.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	return s
}

// Synthesize generates all three components on the grid described by
// sampleRate and length, and their sum.
func (s *Synthesizer) Synthesize(sampleRate float64, length int, spec Spec) (Components, error) {
	if err := spec.Validate(); err != nil {
		return Components{}, err
	}
	if sampleRate <= 0 {
		return Components{}, core.NewParamError("noise", "sampleRate", sampleRate, "must be > 0", core.ErrInvalidSampleRate)
	}
	if length <= 0 {
		return Components{}, core.NewParamError("noise", "length", length, "must be >= 1", core.ErrEmptySignal)
	}
	spec = spec.withDefaults()

	pli := sinusoid(spec.PowerLineHz, spec.PowerLineAmplitude, sampleRate, length)
	bw := sinusoid(spec.BaselineHz, spec.BaselineAmplitude, sampleRate, length)

	hf := make([]float64, length)
	for i := range hf {
		hf[i] = s.rng.NormFloat64()
	}
	vecmath.ScaleBlock(hf, hf, spec.HighFreqAmplitude)

	sum := make([]float64, length)
	copy(sum, pli)
	vecmath.AddBlockInPlace(sum, hf)
	vecmath.AddBlockInPlace(sum, bw)

	var (
		c   Components
		err error
	)
	if c.PowerLine, err = core.NewTimeSeries(pli, sampleRate); err != nil {
		return Components{}, err
	}
	if c.HighFreq, err = core.NewTimeSeries(hf, sampleRate); err != nil {
		return Components{}, err
	}
	if c.Baseline, err = core.NewTimeSeries(bw, sampleRate); err != nil {
		return Components{}, err
	}
	if c.Sum, err = core.NewTimeSeries(sum, sampleRate); err != nil {
		return Components{}, err
	}
	return c, nil
}

// SynthesizeLike generates noise on the same grid as ref.
func (s *Synthesizer) SynthesizeLike(ref core.TimeSeries, spec Spec) (Components, error) {
	return s.Synthesize(ref.SampleRate(), ref.Len(), spec)
}

// Add returns clean + noise. Both series must be aligned.
func Add(clean, noise core.TimeSeries) (core.TimeSeries, error) {
	if err := clean.CheckAligned("noise.Add", noise); err != nil {
		return core.TimeSeries{}, err
	}
	out := clean.Samples()
	vecmath.AddBlockInPlace(out, noise.Samples())
	return core.NewTimeSeries(out, clean.SampleRate())
}

func sinusoid(freqHz, amplitude, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	if amplitude == 0 {
		return out
	}
	w := 2 * math.Pi * freqHz
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i)/sampleRate)
	}
	return out
}
