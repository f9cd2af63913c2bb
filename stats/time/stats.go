// Package time computes amplitude statistics of sampled signals.
package time

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// Stats summarizes the amplitude of one signal.
type Stats struct {
	Length        int     `json:"length"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"std_dev"` // population
	RMS           float64 `json:"rms"`
	Peak          float64 `json:"peak"` // max(|x|)
	PeakToPeak    float64 `json:"peak_to_peak"`
	CrestFactorDB float64 `json:"crest_factor_db"` // 20*log10(peak/RMS), 0 when silent
	ZeroCrossings int     `json:"zero_crossings"`
}

// Calculate computes Stats for signal. An empty signal yields the zero Stats.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	nf := float64(n)
	mean := floats.Sum(signal) / nf

	var ss float64
	for _, x := range signal {
		d := x - mean
		ss += d * d
	}

	maxVal := floats.Max(signal)
	minVal := floats.Min(signal)
	s := Stats{
		Length:        n,
		Mean:          mean,
		StdDev:        math.Sqrt(ss / nf),
		RMS:           RMS(signal),
		Peak:          math.Max(math.Abs(maxVal), math.Abs(minVal)),
		PeakToPeak:    maxVal - minVal,
		ZeroCrossings: ZeroCrossings(signal),
	}
	if s.RMS > 0 {
		s.CrestFactorDB = 20 * math.Log10(s.Peak/s.RMS)
	}
	return s
}

// Summarize computes Stats for the samples of ts.
func Summarize(ts core.TimeSeries) Stats {
	return Calculate(ts.Samples())
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have opposite signs.
func ZeroCrossings(signal []float64) int {
	var count int
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}
