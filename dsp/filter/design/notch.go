package design

import (
	"math"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

// Notch designs a second-order notch centered at freq with quality factor q.
// The -3 dB bandwidth is freq/q and the gain is exactly 1 at DC and Nyquist.
// Returns zero coefficients for a center outside (0, Nyquist) or q <= 0.
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 || q <= 0 {
		return biquad.Coefficients{}
	}

	w0 := 2 * math.Pi * freq / sampleRate
	bw := w0 / q
	gain := 1 / (1 + math.Tan(bw/2))
	cw := math.Cos(w0)

	return biquad.Coefficients{
		B0: gain,
		B1: -2 * gain * cw,
		B2: gain,
		A1: -2 * gain * cw,
		A2: 2*gain - 1,
	}
}
