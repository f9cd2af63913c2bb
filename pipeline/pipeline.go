package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/design"
	"github.com/cwbudde/algo-ecg/dsp/filter/zerophase"
	"github.com/cwbudde/algo-ecg/dsp/noise"
	"github.com/cwbudde/algo-ecg/dsp/signal"
	"github.com/cwbudde/algo-ecg/dsp/spectrum"
	"github.com/cwbudde/algo-ecg/dsp/window"
	"github.com/cwbudde/algo-ecg/measure/quality"
	timestats "github.com/cwbudde/algo-ecg/stats/time"
)

// Source produces the clean waveform on a time grid.
type Source interface {
	Generate(cfg core.ProcessorConfig) (core.TimeSeries, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(cfg core.ProcessorConfig) (core.TimeSeries, error)

// Generate calls f(cfg).
func (f SourceFunc) Generate(cfg core.ProcessorConfig) (core.TimeSeries, error) { return f(cfg) }

// Default ECG rhythm used when no Source is configured.
const (
	DefaultHeartRate    = 70.0
	DefaultHeartRateStd = 1.0
)

// Pipeline runs denoising experiments.
//
// A Pipeline without WithRand is safe for concurrent use. With WithRand the
// injected source is consumed by every Run, so runs must not overlap.
type Pipeline struct {
	logger *zap.Logger
	source Source
	rng    *rand.Rand
	firOpt []design.Option
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSource replaces the synthetic ECG generator.
func WithSource(src Source) Option {
	return func(p *Pipeline) {
		if src != nil {
			p.source = src
		}
	}
}

// WithRand injects the random source used for noise synthesis. Without it
// every Run seeds a private source from Params.Seed.
func WithRand(r *rand.Rand) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.rng = r
		}
	}
}

// WithFIRWindow selects the window used by the FIR designs. Default is
// Hamming.
func WithFIRWindow(t window.Type, opts ...window.Option) Option {
	return func(p *Pipeline) {
		p.firOpt = append(p.firOpt, design.WithWindow(t, opts...))
	}
}

// New returns a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Run executes every stage for params. ctx is checked before each stage.
func (p *Pipeline) Run(ctx context.Context, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	r := &run{
		ctx:    ctx,
		logger: p.logger.With(zap.Int64("seed", params.Seed)),
		res:    &Result{Params: params},
	}
	src := p.source
	if src == nil {
		src = signal.ECGSource{HeartRate: DefaultHeartRate, HeartRateStd: DefaultHeartRateStd, Seed: params.Seed}
	}
	rng := p.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(params.Seed))
	}

	res := r.res
	fs := float64(params.SampleRate)
	start := time.Now()

	steps := []struct {
		stage Stage
		fn    func() ([]zap.Field, error)
	}{
		{StageGenerateClean, func() ([]zap.Field, error) {
			clean, err := src.Generate(params.grid())
			if err != nil {
				return nil, err
			}
			if clean.SampleRate() != fs {
				return nil, core.NewParamError("pipeline", "source sampleRate", clean.SampleRate(),
					fmt.Sprintf("must equal %d", params.SampleRate), core.ErrSampleRateMismatch)
			}
			res.Clean = clean
			return []zap.Field{zap.Int("samples", clean.Len())}, nil
		}},
		{StageSynthesizeNoise, func() ([]zap.Field, error) {
			comps, err := noise.NewSynthesizer(noise.WithRand(rng)).SynthesizeLike(res.Clean, params.noiseSpec())
			if err != nil {
				return nil, err
			}
			res.Noise = comps
			return []zap.Field{
				zap.Float64("power_line_amplitude", params.PowerLineAmplitude),
				zap.Float64("high_freq_amplitude", params.HighFreqAmplitude),
				zap.Float64("baseline_amplitude", params.BaselineAmplitude),
			}, nil
		}},
		{StageComposeNoisy, func() ([]zap.Field, error) {
			noisy, err := noise.Add(res.Clean, res.Noise.Sum)
			if err != nil {
				return nil, err
			}
			res.Noisy = noisy
			return []zap.Field{zap.Int("samples", noisy.Len())}, nil
		}},
		{StageDesignFIR, func() ([]zap.Field, error) {
			bank, err := design.FIRBank(params.FIROrder, fs, p.firOpt...)
			if err != nil {
				return nil, err
			}
			res.FIRFilters = bank
			return []zap.Field{zap.Int("taps", params.FIROrder), zap.Int("filters", len(bank))}, nil
		}},
		{StageApplyFIR, func() ([]zap.Field, error) {
			out, err := zerophase.Cascade(res.FIRFilters, res.Noisy)
			if err != nil {
				return nil, err
			}
			res.FIRFiltered = out
			return []zap.Field{zap.Int("samples", out.Len())}, nil
		}},
		{StageDesignIIR, func() ([]zap.Field, error) {
			bank, err := design.IIRBank(params.IIROrder, fs)
			if err != nil {
				return nil, err
			}
			res.IIRFilters = bank
			return []zap.Field{zap.Int("order", params.IIROrder), zap.Int("filters", len(bank))}, nil
		}},
		{StageApplyIIR, func() ([]zap.Field, error) {
			out, err := zerophase.Cascade(res.IIRFilters, res.Noisy)
			if err != nil {
				return nil, err
			}
			res.IIRFiltered = out
			return []zap.Field{zap.Int("samples", out.Len())}, nil
		}},
		{StageAnalyze, func() ([]zap.Field, error) {
			spec, err := spectrum.MagnitudeSpectrum(res.Noisy)
			if err != nil {
				return nil, err
			}
			res.NoisySpectrum = spec
			res.Stats = SignalStats{
				Clean: timestats.Summarize(res.Clean),
				Noisy: timestats.Summarize(res.Noisy),
				FIR:   timestats.Summarize(res.FIRFiltered),
				IIR:   timestats.Summarize(res.IIRFiltered),
			}

			filters := append(append([]design.Coefficients(nil), res.FIRFilters...), res.IIRFilters...)
			res.Responses = make([]Response, 0, len(filters))
			for _, c := range filters {
				points, err := spectrum.FrequencyResponse(c, params.responsePoints())
				if err != nil {
					return nil, fmt.Errorf("%s: %w", c.Label(), err)
				}
				res.Responses = append(res.Responses, Response{Label: c.Label(), Filter: c, Points: points})
			}
			return []zap.Field{zap.Int("bins", len(spec)), zap.Int("responses", len(res.Responses))}, nil
		}},
		{StageEvaluate, func() ([]zap.Field, error) {
			report, err := quality.Evaluate(res.Clean, res.Noisy, res.FIRFiltered, res.IIRFiltered)
			if err != nil {
				return nil, err
			}
			res.Report = report
			return []zap.Field{
				zap.Float64("snr_before_db", report.SNRBeforeDB),
				zap.Float64("snr_fir_db", report.SNRFIRDB),
				zap.Float64("snr_iir_db", report.SNRIIRDB),
			}, nil
		}},
	}

	for _, s := range steps {
		if err := r.stage(s.stage, s.fn); err != nil {
			return nil, err
		}
	}
	res.Stages = append(res.Stages, StageDone)

	r.logger.Info("run complete",
		zap.Int("sample_rate", params.SampleRate),
		zap.Float64("duration_seconds", params.DurationSeconds),
		zap.Float64("snr_before_db", res.Report.SNRBeforeDB),
		zap.Float64("snr_fir_db", res.Report.SNRFIRDB),
		zap.Float64("snr_iir_db", res.Report.SNRIIRDB),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

type run struct {
	ctx    context.Context
	logger *zap.Logger
	res    *Result
}

func (r *run) stage(s Stage, fn func() ([]zap.Field, error)) error {
	if err := r.ctx.Err(); err != nil {
		return &StageError{Stage: s, Err: err}
	}

	start := time.Now()
	fields, err := fn()
	if err != nil {
		r.logger.Debug("stage failed", zap.String("stage", string(s)), zap.Error(err))
		return &StageError{Stage: s, Err: err}
	}
	r.res.Stages = append(r.res.Stages, s)

	fields = append(fields, zap.String("stage", string(s)), zap.Duration("elapsed", time.Since(start)))
	r.logger.Debug("stage complete", fields...)
	return nil
}
