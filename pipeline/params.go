package pipeline

import (
	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/noise"
	"github.com/cwbudde/algo-ecg/dsp/spectrum"
)

// Parameter ranges accepted by Validate.
const (
	MinSampleRate = 250
	MaxSampleRate = 2000
	MinDuration   = 2.0
	MaxDuration   = 15.0
	MaxAmplitude  = 1.0
	MaxFIROrder   = 399
	MaxIIROrder   = 10
)

// Params configures one run.
type Params struct {
	SampleRate         int     `json:"sample_rate"`
	DurationSeconds    float64 `json:"duration_seconds"`
	PowerLineAmplitude float64 `json:"power_line_amplitude"`
	HighFreqAmplitude  float64 `json:"high_freq_amplitude"`
	BaselineAmplitude  float64 `json:"baseline_amplitude"`
	FIROrder           int     `json:"fir_order"`
	IIROrder           int     `json:"iir_order"`
	Seed               int64   `json:"seed"`

	// ResponsePoints is the filter response grid size. Zero selects
	// spectrum.DefaultResponsePoints.
	ResponsePoints int `json:"response_points"`
}

// DefaultParams returns the reference experiment: 360 Hz for 6 s, noise
// amplitudes 0.2/0.05/0.3, a 101-tap FIR cascade and a 4th-order IIR cascade.
func DefaultParams() Params {
	ns := noise.DefaultSpec()
	return Params{
		SampleRate:         360,
		DurationSeconds:    6,
		PowerLineAmplitude: ns.PowerLineAmplitude,
		HighFreqAmplitude:  ns.HighFreqAmplitude,
		BaselineAmplitude:  ns.BaselineAmplitude,
		FIROrder:           101,
		IIROrder:           4,
		Seed:               1,
		ResponsePoints:     spectrum.DefaultResponsePoints,
	}
}

// Validate checks every parameter against its accepted range.
func (p Params) Validate() error {
	const op = "pipeline"
	if p.SampleRate < MinSampleRate || p.SampleRate > MaxSampleRate {
		return core.NewParamError(op, "sampleRate", p.SampleRate, "must be in [250, 2000]", core.ErrInvalidSampleRate)
	}
	if !(p.DurationSeconds >= MinDuration && p.DurationSeconds <= MaxDuration) {
		return core.NewParamError(op, "duration", p.DurationSeconds, "must be in [2, 15]", core.ErrInvalidDuration)
	}

	amps := []struct {
		name string
		v    float64
	}{
		{"powerLineAmplitude", p.PowerLineAmplitude},
		{"highFreqAmplitude", p.HighFreqAmplitude},
		{"baselineAmplitude", p.BaselineAmplitude},
	}
	for _, a := range amps {
		if !(a.v >= 0 && a.v <= MaxAmplitude) {
			return core.NewParamError(op, a.name, a.v, "must be in [0, 1]", core.ErrInvalidAmplitude)
		}
	}

	if p.FIROrder < 1 || p.FIROrder > MaxFIROrder || p.FIROrder%2 == 0 {
		return core.NewParamError(op, "firOrder", p.FIROrder, "must be odd and in [1, 399]", core.ErrInvalidOrder)
	}
	if p.IIROrder < 1 || p.IIROrder > MaxIIROrder {
		return core.NewParamError(op, "iirOrder", p.IIROrder, "must be in [1, 10]", core.ErrInvalidOrder)
	}
	if p.ResponsePoints < 0 {
		return core.NewParamError(op, "responsePoints", p.ResponsePoints, "must be >= 0", core.ErrInvalidPoints)
	}
	return nil
}

func (p Params) grid() core.ProcessorConfig {
	return core.ProcessorConfig{
		SampleRate: float64(p.SampleRate),
		Duration:   p.DurationSeconds,
	}
}

func (p Params) noiseSpec() noise.Spec {
	return noise.Spec{
		PowerLineAmplitude: p.PowerLineAmplitude,
		HighFreqAmplitude:  p.HighFreqAmplitude,
		BaselineAmplitude:  p.BaselineAmplitude,
		PowerLineHz:        noise.DefaultPowerLineHz,
		BaselineHz:         noise.DefaultBaselineHz,
	}
}

func (p Params) responsePoints() int {
	if p.ResponsePoints == 0 {
		return spectrum.DefaultResponsePoints
	}
	return p.ResponsePoints
}
