package core

import "math"

// TimeSeries is a uniformly sampled real-valued signal. The sample at index i
// occurs at time i/SampleRate. A TimeSeries is never mutated after
// construction: accessors return copies.
type TimeSeries struct {
	samples    []float64
	sampleRate float64
}

// NewTimeSeries validates and copies samples into a new TimeSeries.
func NewTimeSeries(samples []float64, sampleRate float64) (TimeSeries, error) {
	if sampleRate <= 0 || !IsFinite(sampleRate) {
		return TimeSeries{}, NewParamError("core.NewTimeSeries", "sampleRate", sampleRate, "must be > 0", ErrInvalidSampleRate)
	}
	if len(samples) == 0 {
		return TimeSeries{}, NewParamError("core.NewTimeSeries", "len(samples)", 0, "must be >= 1", ErrEmptySignal)
	}
	s := make([]float64, len(samples))
	copy(s, samples)
	return TimeSeries{samples: s, sampleRate: sampleRate}, nil
}

// MustTimeSeries is like NewTimeSeries but panics on invalid input.
// Intended for tests and examples.
func MustTimeSeries(samples []float64, sampleRate float64) TimeSeries {
	ts, err := NewTimeSeries(samples, sampleRate)
	if err != nil {
		panic(err)
	}
	return ts
}

// Len returns the number of samples.
func (ts TimeSeries) Len() int { return len(ts.samples) }

// SampleRate returns the sample rate in Hz.
func (ts TimeSeries) SampleRate() float64 { return ts.sampleRate }

// Nyquist returns half the sample rate.
func (ts TimeSeries) Nyquist() float64 { return ts.sampleRate / 2 }

// Duration returns Len()/SampleRate() in seconds.
func (ts TimeSeries) Duration() float64 {
	if ts.sampleRate == 0 {
		return 0
	}
	return float64(len(ts.samples)) / ts.sampleRate
}

// IsZero reports whether ts is the zero value (no samples).
func (ts TimeSeries) IsZero() bool { return len(ts.samples) == 0 }

// At returns the sample at index i.
func (ts TimeSeries) At(i int) float64 { return ts.samples[i] }

// Samples returns a copy of the sample values.
func (ts TimeSeries) Samples() []float64 {
	out := make([]float64, len(ts.samples))
	copy(out, ts.samples)
	return out
}

// Time returns the time in seconds of sample i.
func (ts TimeSeries) Time(i int) float64 {
	return float64(i) / ts.sampleRate
}

// Times returns the time grid of the series.
func (ts TimeSeries) Times() []float64 {
	out := make([]float64, len(ts.samples))
	for i := range out {
		out[i] = ts.Time(i)
	}
	return out
}

// WithSamples returns a new TimeSeries with the same sample rate holding a
// copy of samples. The length must match ts.
func (ts TimeSeries) WithSamples(samples []float64) (TimeSeries, error) {
	if len(samples) != len(ts.samples) {
		return TimeSeries{}, NewParamError("core.WithSamples", "len(samples)", len(samples), "must equal series length", ErrLengthMismatch)
	}
	return NewTimeSeries(samples, ts.sampleRate)
}

// CheckAligned returns an error unless other has the same length and
// sample rate as ts. op names the calling operation in the error.
func (ts TimeSeries) CheckAligned(op string, other TimeSeries) error {
	if other.Len() != ts.Len() {
		return NewParamError(op, "len", other.Len(), "must equal reference length", ErrLengthMismatch)
	}
	if math.Abs(other.sampleRate-ts.sampleRate) > 1e-9*ts.sampleRate {
		return NewParamError(op, "sampleRate", other.sampleRate, "must equal reference sample rate", ErrSampleRateMismatch)
	}
	return nil
}
