package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// Point is one sample of a spectrum or frequency response.
type Point struct {
	FreqHz    float64
	Magnitude float64
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |X[k]| for each complex bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)
	return out
}

// MagnitudeSpectrum returns |X[k]| of the DFT of the whole signal for
// k = 0 .. N/2-1 at FreqHz = k*fs/N. Any length is accepted.
func MagnitudeSpectrum(x core.TimeSeries) ([]Point, error) {
	if x.IsZero() {
		return nil, core.NewParamError("spectrum", "length", 0, "must be >= 1", core.ErrEmptySignal)
	}

	n := x.Len()
	coeffs := fourier.NewFFT(n).Coefficients(nil, x.Samples())
	bins := n / 2
	mags := Magnitude(coeffs[:bins])

	fs := x.SampleRate()
	out := make([]Point, bins)
	for k := range out {
		out[k] = Point{FreqHz: float64(k) * fs / float64(n), Magnitude: mags[k]}
	}
	return out, nil
}

// Limit returns the leading points with FreqHz <= maxHz.
func Limit(points []Point, maxHz float64) []Point {
	end := 0
	for end < len(points) && points[end].FreqHz <= maxHz {
		end++
	}
	return append([]Point(nil), points[:end]...)
}

// PeakFrequency returns the point of largest magnitude, ignoring the first
// (DC) point. ok is false when there are fewer than two points.
func PeakFrequency(points []Point) (peak Point, ok bool) {
	if len(points) < 2 {
		return Point{}, false
	}
	peak = points[1]
	for _, p := range points[2:] {
		if p.Magnitude > peak.Magnitude {
			peak = p
		}
	}
	return peak, true
}
