package signal

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// Wave is one Gaussian component of a heartbeat, positioned on the cardiac
// phase where the R peak sits at 0 and a full beat spans [-pi, pi).
type Wave struct {
	Name      string
	Phase     float64 // radians
	Width     float64 // radians (standard deviation)
	Amplitude float64 // mV
}

// DefaultWaves returns a typical lead-II PQRST morphology.
func DefaultWaves() []Wave {
	return []Wave{
		{Name: "P", Phase: -70 * math.Pi / 180, Width: 0.25, Amplitude: 0.15},
		{Name: "Q", Phase: -15 * math.Pi / 180, Width: 0.1, Amplitude: -0.15},
		{Name: "R", Phase: 0, Width: 0.1, Amplitude: 1.0},
		{Name: "S", Phase: 15 * math.Pi / 180, Width: 0.1, Amplitude: -0.25},
		{Name: "T", Phase: 100 * math.Pi / 180, Width: 0.4, Amplitude: 0.3},
	}
}

type ecgConfig struct {
	heartRate    float64
	heartRateStd float64
	waves        []Wave
}

// ECGOption configures ECG synthesis.
type ECGOption func(*ecgConfig)

// WithHeartRate sets the mean heart rate in beats per minute.
func WithHeartRate(bpm float64) ECGOption {
	return func(c *ecgConfig) {
		if bpm > 0 {
			c.heartRate = bpm
		}
	}
}

// WithHeartRateStd sets the beat-to-beat heart-rate standard deviation in
// beats per minute. Zero produces a strictly periodic waveform.
func WithHeartRateStd(bpm float64) ECGOption {
	return func(c *ecgConfig) {
		if bpm >= 0 {
			c.heartRateStd = bpm
		}
	}
}

// WithWaves replaces the beat morphology.
func WithWaves(waves []Wave) ECGOption {
	cp := append([]Wave(nil), waves...)
	return func(c *ecgConfig) {
		if len(cp) > 0 {
			c.waves = cp
		}
	}
}

// ECG synthesizes a quasi-periodic PQRST waveform over the configured grid.
// The output length is round(SampleRate*Duration).
func (g *Generator) ECG(opts ...ECGOption) (core.TimeSeries, error) {
	n, err := g.samples()
	if err != nil {
		return core.TimeSeries{}, err
	}

	cfg := ecgConfig{heartRate: 70, heartRateStd: 1, waves: DefaultWaves()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	rng := rand.New(rand.NewSource(g.seed))
	fs := g.cfg.SampleRate

	out := make([]float64, n)
	phase := -math.Pi
	omega := beatOmega(cfg, rng, fs)
	for i := range out {
		out[i] = beatValue(phase, cfg.waves)
		phase += omega
		if phase >= math.Pi {
			phase -= 2 * math.Pi
			omega = beatOmega(cfg, rng, fs)
		}
	}
	return core.NewTimeSeries(out, fs)
}

// beatOmega draws the phase increment per sample for the next beat.
func beatOmega(cfg ecgConfig, rng *rand.Rand, fs float64) float64 {
	hr := cfg.heartRate + cfg.heartRateStd*rng.NormFloat64()
	// Keep physiological bounds so a large std cannot stall the phase.
	hr = math.Max(20, math.Min(hr, 250))
	return 2 * math.Pi * hr / 60 / fs
}

func beatValue(phase float64, waves []Wave) float64 {
	var z float64
	for _, w := range waves {
		d := math.Remainder(phase-w.Phase, 2*math.Pi)
		z += w.Amplitude * math.Exp(-d*d/(2*w.Width*w.Width))
	}
	return z
}

// ECGSource adapts a seeded ECG generator to the clean-waveform source used by
// the denoising pipeline.
type ECGSource struct {
	HeartRate    float64
	HeartRateStd float64
	Seed         int64
}

// Generate returns one synthetic ECG on the grid described by cfg. A
// non-positive sample rate or duration is an error rather than a fallback to
// the default grid.
func (s ECGSource) Generate(cfg core.ProcessorConfig) (core.TimeSeries, error) {
	if _, err := gridSamples(cfg); err != nil {
		return core.TimeSeries{}, err
	}
	g := &Generator{cfg: cfg, seed: s.Seed}
	return g.ECG(WithHeartRate(s.HeartRate), WithHeartRateStd(s.HeartRateStd))
}
