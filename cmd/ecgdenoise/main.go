// Command ecgdenoise runs one ECG denoising experiment and prints its
// quality report.
//
// Usage:
//
//	ecgdenoise [flags]
//
// Flag defaults can be overridden through the environment: ECG_SAMPLE_RATE,
// ECG_DURATION, ECG_PLI_AMP, ECG_HF_AMP, ECG_BASELINE_AMP, ECG_FIR_ORDER,
// ECG_IIR_ORDER and ECG_SEED.
//
// Examples:
//
//	ecgdenoise
//	ecgdenoise -fir-order 201 -iir-order 6
//	ecgdenoise -window blackman -json
//	ecgdenoise -parquet signals.parquet -responses responses.parquet
//	ecgdenoise -list-windows
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-ecg/dsp/spectrum"
	"github.com/cwbudde/algo-ecg/dsp/window"
	"github.com/cwbudde/algo-ecg/export"
	"github.com/cwbudde/algo-ecg/pipeline"
	timestats "github.com/cwbudde/algo-ecg/stats/time"
)

// displayLimitHz bounds the noisy spectrum summary.
const displayLimitHz = 150

type options struct {
	params       pipeline.Params
	window       string
	alpha        float64
	jsonOut      bool
	parquetPath  string
	responsePath string
	compression  string
	logLevel     string
	listWindows  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.listWindows {
		printWindows(stdout)
		return 0
	}

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	wt, err := window.Parse(opts.window)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	var winOpts []window.Option
	if !math.IsNaN(opts.alpha) {
		winOpts = append(winOpts, window.WithAlpha(opts.alpha))
	}

	p := pipeline.New(pipeline.WithLogger(logger), pipeline.WithFIRWindow(wt, winOpts...))
	res, err := p.Run(ctx, opts.params)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if opts.parquetPath != "" {
		if err := writeFile(opts.parquetPath, func(w io.Writer) error {
			return export.WriteSignals(w, res, export.WithCompression(opts.compression))
		}); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		logger.Info("signals written", zap.String("path", opts.parquetPath))
	}
	if opts.responsePath != "" {
		if err := writeFile(opts.responsePath, func(w io.Writer) error {
			return export.WriteResponses(w, res, export.WithCompression(opts.compression))
		}); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		logger.Info("responses written", zap.String("path", opts.responsePath))
	}

	if opts.jsonOut {
		if err := export.WriteReportJSON(stdout, res); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := printReport(stdout, res); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: failed to write report: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	def := pipeline.DefaultParams()
	var o options

	fs := flag.NewFlagSet("ecgdenoise", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.params.SampleRate, "sample-rate", envIntOr("ECG_SAMPLE_RATE", def.SampleRate), "sampling rate in Hz (250-2000)")
	fs.Float64Var(&o.params.DurationSeconds, "duration", envFloatOr("ECG_DURATION", def.DurationSeconds), "signal duration in seconds (2-15)")
	fs.Float64Var(&o.params.PowerLineAmplitude, "pli-amp", envFloatOr("ECG_PLI_AMP", def.PowerLineAmplitude), "50 Hz power-line amplitude (0-1)")
	fs.Float64Var(&o.params.HighFreqAmplitude, "hf-amp", envFloatOr("ECG_HF_AMP", def.HighFreqAmplitude), "high-frequency noise standard deviation (0-1)")
	fs.Float64Var(&o.params.BaselineAmplitude, "baseline-amp", envFloatOr("ECG_BASELINE_AMP", def.BaselineAmplitude), "baseline wander amplitude (0-1)")
	fs.IntVar(&o.params.FIROrder, "fir-order", envIntOr("ECG_FIR_ORDER", def.FIROrder), "FIR tap count, odd (1-399)")
	fs.IntVar(&o.params.IIROrder, "iir-order", envIntOr("ECG_IIR_ORDER", def.IIROrder), "Butterworth order (1-10)")
	fs.Int64Var(&o.params.Seed, "seed", int64(envIntOr("ECG_SEED", int(def.Seed))), "random seed")
	fs.IntVar(&o.params.ResponsePoints, "points", def.ResponsePoints, "filter response grid size")
	fs.StringVar(&o.window, "window", window.TypeHamming.String(), "FIR design window")
	fs.Float64Var(&o.alpha, "alpha", math.NaN(), "Kaiser beta for -window kaiser")
	fs.BoolVar(&o.jsonOut, "json", false, "print the report as JSON")
	fs.StringVar(&o.parquetPath, "parquet", "", "write signals to this parquet file")
	fs.StringVar(&o.responsePath, "responses", "", "write filter responses to this parquet file")
	fs.StringVar(&o.compression, "compression", "zstd", "parquet compression: zstd, gzip, snappy, none")
	fs.StringVar(&o.logLevel, "log-level", envOr("ECG_LOG_LEVEL", "warn"), "log level: debug, info, warn, error")
	fs.BoolVar(&o.listWindows, "list-windows", false, "list available FIR design windows")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: ecgdenoise [flags]\n\n")
		_, _ = fmt.Fprintf(stderr, "Removes synthetic power-line, high-frequency and baseline noise from an ECG\n")
		_, _ = fmt.Fprintf(stderr, "with FIR and IIR zero-phase cascades and reports the recovered SNR.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printReport(w io.Writer, res *pipeline.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	p := res.Params
	if _, err := fmt.Fprintf(tw, "Signal\t%d Hz, %.1f s, %d samples\n", p.SampleRate, p.DurationSeconds, res.Clean.Len()); err != nil {
		return err
	}
	if peak, ok := spectrum.PeakFrequency(spectrum.Limit(res.NoisySpectrum, displayLimitHz)); ok {
		if _, err := fmt.Fprintf(tw, "Noisy spectrum peak\t%.2f Hz\n", peak.FreqHz); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(tw, "\t\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "Metric\tValue\n------\t-----\n"); err != nil {
		return err
	}
	for _, row := range res.Report.Rows() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row.Label, row.Value); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(tw, "\t\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "Signal\tRMS\tPeak\tCrest [dB]\tMean\n------\t---\t----\t----------\t----\n"); err != nil {
		return err
	}
	for _, row := range []struct {
		name string
		s    timestats.Stats
	}{
		{"Clean", res.Stats.Clean},
		{"Noisy", res.Stats.Noisy},
		{"FIR", res.Stats.FIR},
		{"IIR", res.Stats.IIR},
	} {
		if _, err := fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.2f\t%.4f\n", row.name, row.s.RMS, row.s.Peak, row.s.CrestFactorDB, row.s.Mean); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(tw, "\t\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "Filter\tOrder\tSections\n------\t-----\t--------\n"); err != nil {
		return err
	}
	for _, r := range res.Responses {
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\n", r.Label, r.Filter.Order(), len(r.Filter.Sections)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printWindows(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Window\tSidelobe [dB]\tTransition [fs/taps]\n")
	for _, t := range []window.Type{window.TypeRectangular, window.TypeHann, window.TypeHamming, window.TypeBlackman, window.TypeKaiser} {
		m := window.Info(t)
		_, _ = fmt.Fprintf(tw, "%s\t%.1f\t%.1f\n", m.Name, m.HighestSidelobe, m.Transition)
	}
	_ = tw.Flush()
}
