package pipeline

import (
	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/design"
	"github.com/cwbudde/algo-ecg/dsp/noise"
	"github.com/cwbudde/algo-ecg/dsp/spectrum"
	"github.com/cwbudde/algo-ecg/measure/quality"
	timestats "github.com/cwbudde/algo-ecg/stats/time"
)

// SignalStats holds amplitude statistics of the run's signals.
type SignalStats struct {
	Clean timestats.Stats `json:"clean"`
	Noisy timestats.Stats `json:"noisy"`
	FIR   timestats.Stats `json:"fir"`
	IIR   timestats.Stats `json:"iir"`
}

// Response is the magnitude response of one designed filter.
type Response struct {
	Label  string
	Filter design.Coefficients
	Points []spectrum.Point
}

// Result holds every value produced by a run.
type Result struct {
	Params Params

	Clean       core.TimeSeries
	Noise       noise.Components
	Noisy       core.TimeSeries
	FIRFiltered core.TimeSeries
	IIRFiltered core.TimeSeries

	// NoisySpectrum covers [0, Nyquist) of the noisy signal.
	NoisySpectrum []spectrum.Point

	FIRFilters []design.Coefficients
	IIRFilters []design.Coefficients

	// Responses holds the FIR responses followed by the IIR responses, each
	// in cascade order: high-pass, notch, low-pass.
	Responses []Response

	Stats  SignalStats
	Report quality.Report

	// Stages lists the completed stages in order.
	Stages []Stage
}

// Response returns the response labelled label, e.g. "Notch IIR".
func (r *Result) Response(label string) (Response, bool) {
	for _, resp := range r.Responses {
		if resp.Label == label {
			return resp, true
		}
	}
	return Response{}, false
}
