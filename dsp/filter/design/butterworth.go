package design

import (
	"math"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

// ButterworthLP designs a low-pass Butterworth cascade with the -3 dB point
// at freq. For odd orders the final section is first-order (B2=A2=0).
// Returns nil for a non-positive order or a corner outside (0, Nyquist).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(freq, order, sampleRate, lowpassRBJ, butterworthFirstOrderLP)
}

// ButterworthHP designs a high-pass Butterworth cascade with the -3 dB point
// at freq. For odd orders the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(freq, order, sampleRate, highpassRBJ, butterworthFirstOrderHP)
}

func butterworth(
	freq float64,
	order int,
	sampleRate float64,
	second func(w0, q float64) biquad.Coefficients,
	first func(k float64) biquad.Coefficients,
) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return nil
	}
	w0 := 2 * math.Pi * freq / sampleRate

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, second(w0, butterworthQ(order, i)))
	}
	if order%2 != 0 {
		sections = append(sections, first(k))
	}
	return sections
}

// butterworthQ returns the quality factor of pole pair index of an
// order-n Butterworth prototype.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	return 1 / (2 * math.Sin(theta))
}

func bilinearK(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}
	return math.Tan(math.Pi * freq / sampleRate), true
}

func lowpassRBJ(w0, q float64) biquad.Coefficients {
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(
		(1-cw)/2, 1-cw, (1-cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

func highpassRBJ(w0, q float64) biquad.Coefficients {
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(
		(1+cw)/2, -(1 + cw), (1+cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

func butterworthFirstOrderLP(k float64) biquad.Coefficients {
	norm := 1 / (1 + k)
	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func butterworthFirstOrderHP(k float64) biquad.Coefficients {
	norm := 1 / (1 + k)
	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
