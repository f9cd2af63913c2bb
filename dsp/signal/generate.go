package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed used for heart-rate variation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the current random seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed updates the random seed for subsequent calls.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

func (g *Generator) samples() (int, error) {
	return gridSamples(g.cfg)
}

// gridSamples validates cfg and returns its sample count.
func gridSamples(cfg core.ProcessorConfig) (int, error) {
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return 0, core.NewParamError("signal", "sampleRate", cfg.SampleRate, "must be > 0", core.ErrInvalidSampleRate)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return 0, core.NewParamError("signal", "duration", cfg.Duration, "must be > 0", core.ErrInvalidDuration)
	}
	n := cfg.Samples()
	if n <= 0 {
		return 0, core.NewParamError("signal", "duration", cfg.Duration, "must yield at least one sample", core.ErrInvalidDuration)
	}
	return n, nil
}

// Sine generates amplitude*sin(2*pi*freqHz*t) over the configured grid.
func (g *Generator) Sine(freqHz, amplitude float64) (core.TimeSeries, error) {
	return g.SineWithPhase(freqHz, amplitude, 0)
}

// SineWithPhase generates amplitude*sin(2*pi*freqHz*t + phase) over the configured grid.
func (g *Generator) SineWithPhase(freqHz, amplitude, phase float64) (core.TimeSeries, error) {
	n, err := g.samples()
	if err != nil {
		return core.TimeSeries{}, err
	}
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return core.NewTimeSeries(out, g.cfg.SampleRate)
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
