// Package testutil holds deterministic signals and tolerance assertions
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// DeterministicSine generates amplitude*sin(2*pi*freqHz*n/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates zero-mean Gaussian noise with standard
// deviation sigma from a fixed seed.
func DeterministicNoise(seed int64, sigma float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = sigma * rng.NormFloat64()
	}
	return out
}

// Mix returns the element-wise sum of equally long signals.
func Mix(parts ...[]float64) []float64 {
	if len(parts) == 0 {
		return nil
	}
	out := make([]float64, len(parts[0]))
	for _, p := range parts {
		for i := range out {
			out[i] += p[i]
		}
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Series wraps samples in a TimeSeries and panics on invalid input.
func Series(samples []float64, sampleRate float64) core.TimeSeries {
	return core.MustTimeSeries(samples, sampleRate)
}

// SineSeries returns a unit-phase sine as a TimeSeries.
func SineSeries(freqHz, sampleRate, amplitude float64, length int) core.TimeSeries {
	return Series(DeterministicSine(freqHz, sampleRate, amplitude, length), sampleRate)
}
