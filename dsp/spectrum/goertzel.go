package spectrum

import (
	"math"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// Goertzel evaluates a single DFT term recursively.
//
// The analyzer accumulates every sample processed since the last Reset.
// Power and Magnitude equal |X|^2 and |X| of a DFT of the same samples
// evaluated at the target frequency, which need not fall on a bin.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates an analyzer for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	const op = "goertzel"
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, core.NewParamError(op, "sampleRate", sampleRate, "must be > 0", core.ErrInvalidSampleRate)
	}
	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, core.NewParamError(op, "frequency", frequency, "must be in [0, sampleRate/2]", core.ErrInvalidCutoff)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the frequency component.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the frequency component.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneAmplitude estimates the peak amplitude of the sinusoid at freqHz in x
// as 2|X(f)|/N. The estimate is exact when x spans a whole number of cycles.
func ToneAmplitude(x core.TimeSeries, freqHz float64) (float64, error) {
	if x.IsZero() {
		return 0, core.NewParamError("goertzel", "length", 0, "must be >= 1", core.ErrEmptySignal)
	}

	g, err := NewGoertzel(freqHz, x.SampleRate())
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(x.Samples())

	return 2 * g.Magnitude() / float64(x.Len()), nil
}
