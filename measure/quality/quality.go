package quality

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/noise"
	"github.com/cwbudde/algo-ecg/dsp/spectrum"
)

// SNRdB returns 10*log10(sum(ref^2) / sum((test-ref)^2)).
//
// A reference without energy or a test signal identical to the reference
// has no finite SNR and yields core.ErrDegenerateSignal.
func SNRdB(reference, test core.TimeSeries) (float64, error) {
	const op = "quality.SNRdB"
	ref, diff, err := residual(op, reference, test)
	if err != nil {
		return 0, err
	}

	signal := floats.Dot(ref, ref)
	if signal == 0 {
		return 0, core.NewParamError(op, "reference", "energy=0", "must have non-zero energy", core.ErrDegenerateSignal)
	}
	distortion := floats.Dot(diff, diff)
	if distortion == 0 {
		return 0, core.NewParamError(op, "test", "distortion=0", "must differ from reference", core.ErrDegenerateSignal)
	}

	return 10 * math.Log10(signal/distortion), nil
}

// MSE returns mean((ref-test)^2).
func MSE(reference, test core.TimeSeries) (float64, error) {
	_, diff, err := residual("quality.MSE", reference, test)
	if err != nil {
		return 0, err
	}

	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

func residual(op string, reference, test core.TimeSeries) (ref, diff []float64, err error) {
	if reference.IsZero() || test.IsZero() {
		return nil, nil, core.NewParamError(op, "length", 0, "must be >= 1", core.ErrEmptySignal)
	}
	if reference.Len() != test.Len() {
		return nil, nil, core.NewParamError(op, "length", test.Len(),
			"must equal reference length "+strconv.Itoa(reference.Len()), core.ErrLengthMismatch)
	}

	ref = reference.Samples()
	diff = test.Samples()
	floats.Sub(diff, ref)
	return ref, diff, nil
}

// Report summarizes one denoising run.
type Report struct {
	SNRBeforeDB float64 `json:"snr_before_db"`
	SNRFIRDB    float64 `json:"snr_fir_db"`
	SNRIIRDB    float64 `json:"snr_iir_db"`
	MSEFIR      float64 `json:"mse_fir"`
	MSEIIR      float64 `json:"mse_iir"`

	// Peak amplitude of the power-line tone in each signal.
	PowerLineNoisy float64 `json:"power_line_noisy"`
	PowerLineFIR   float64 `json:"power_line_fir"`
	PowerLineIIR   float64 `json:"power_line_iir"`
}

// Option configures Evaluate.
type Option func(*config)

type config struct {
	powerLineHz float64
}

// WithPowerLineHz sets the tone measured for the PowerLine fields.
// Default is noise.DefaultPowerLineHz.
func WithPowerLineHz(hz float64) Option {
	return func(c *config) {
		if hz > 0 {
			c.powerLineHz = hz
		}
	}
}

// Evaluate scores the noisy input and both filtered outputs against clean.
func Evaluate(clean, noisy, fir, iir core.TimeSeries, opts ...Option) (Report, error) {
	cfg := config{powerLineHz: noise.DefaultPowerLineHz}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var (
		r   Report
		err error
	)
	if r.SNRBeforeDB, err = SNRdB(clean, noisy); err != nil {
		return Report{}, err
	}
	if r.SNRFIRDB, err = SNRdB(clean, fir); err != nil {
		return Report{}, err
	}
	if r.SNRIIRDB, err = SNRdB(clean, iir); err != nil {
		return Report{}, err
	}
	if r.MSEFIR, err = MSE(clean, fir); err != nil {
		return Report{}, err
	}
	if r.MSEIIR, err = MSE(clean, iir); err != nil {
		return Report{}, err
	}

	if cfg.powerLineHz <= clean.Nyquist() {
		if r.PowerLineNoisy, err = spectrum.ToneAmplitude(noisy, cfg.powerLineHz); err != nil {
			return Report{}, err
		}
		if r.PowerLineFIR, err = spectrum.ToneAmplitude(fir, cfg.powerLineHz); err != nil {
			return Report{}, err
		}
		if r.PowerLineIIR, err = spectrum.ToneAmplitude(iir, cfg.powerLineHz); err != nil {
			return Report{}, err
		}
	}

	return r, nil
}

// Row is one labelled, formatted Report value.
type Row struct {
	Label string
	Value string
}

// Rows formats the report for display: SNR with two decimals, MSE with six.
func (r Report) Rows() []Row {
	return []Row{
		{"SNR before filtering", fmt.Sprintf("%.2f dB", r.SNRBeforeDB)},
		{"SNR after FIR", fmt.Sprintf("%.2f dB", r.SNRFIRDB)},
		{"SNR after IIR", fmt.Sprintf("%.2f dB", r.SNRIIRDB)},
		{"MSE FIR", fmt.Sprintf("%.6f", r.MSEFIR)},
		{"MSE IIR", fmt.Sprintf("%.6f", r.MSEIIR)},
		{"Power-line residual (noisy)", fmt.Sprintf("%.4f", r.PowerLineNoisy)},
		{"Power-line residual (FIR)", fmt.Sprintf("%.4f", r.PowerLineFIR)},
		{"Power-line residual (IIR)", fmt.Sprintf("%.4f", r.PowerLineIIR)},
	}
}
