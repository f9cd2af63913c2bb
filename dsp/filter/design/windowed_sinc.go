package design

import (
	"math"

	"github.com/cwbudde/algo-ecg/dsp/window"
)

// windowedSinc builds a linear-phase FIR from ideal pass bands given as
// [left, right] pairs normalized to Nyquist (1.0).
//
// The ideal impulse response of each band is right*sinc(right*m) -
// left*sinc(left*m) with m centered on the middle tap. The sum is tapered by
// the configured window and scaled to unit gain at the center of the first
// pass band: DC when it starts at 0, Nyquist when it ends at 1.
func windowedSinc(taps int, bands [][2]float64, cfg config) []float64 {
	h := make([]float64, taps)
	alpha := 0.5 * float64(taps-1)

	for i := range h {
		m := float64(i) - alpha
		for _, b := range bands {
			h[i] += b[1]*sinc(b[1]*m) - b[0]*sinc(b[0]*m)
		}
	}

	window.Apply(cfg.window, h, cfg.windowOpts...)

	left, right := bands[0][0], bands[0][1]
	var scaleFreq float64
	switch {
	case left == 0:
		scaleFreq = 0
	case right == 1:
		scaleFreq = 1
	default:
		scaleFreq = 0.5 * (left + right)
	}

	var s float64
	for i, v := range h {
		s += v * math.Cos(math.Pi*(float64(i)-alpha)*scaleFreq)
	}
	for i := range h {
		h[i] /= s
	}

	return h
}

// sinc is the normalized sinc sin(pi*x)/(pi*x).
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
