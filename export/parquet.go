package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/pipeline"
)

// SignalRow is one sample of every signal of a run.
type SignalRow struct {
	Time  float64 `parquet:"time"`
	Clean float64 `parquet:"clean"`
	Noise float64 `parquet:"noise"`
	Noisy float64 `parquet:"noisy"`
	FIR   float64 `parquet:"fir"`
	IIR   float64 `parquet:"iir"`
}

// ResponseRow is one point of a labelled filter response.
type ResponseRow struct {
	Filter    string  `parquet:"filter"`
	FreqHz    float64 `parquet:"freq_hz"`
	Magnitude float64 `parquet:"magnitude"`
}

// Option configures the parquet writers.
type Option func(*config)

type config struct {
	compression parquet.WriterOption
}

// WithCompression selects the page codec: "zstd" (default), "gzip",
// "snappy" or "none".
func WithCompression(name string) Option {
	return func(c *config) {
		switch strings.ToLower(name) {
		case "gzip", "gz":
			c.compression = parquet.Compression(&parquet.Gzip)
		case "snappy":
			c.compression = parquet.Compression(&parquet.Snappy)
		case "none", "uncompressed":
			c.compression = parquet.Compression(&parquet.Uncompressed)
		default:
			c.compression = parquet.Compression(&parquet.Zstd)
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{compression: parquet.Compression(&parquet.Zstd)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Signals returns one row per sample of res.
func Signals(res *pipeline.Result) ([]SignalRow, error) {
	if res == nil || res.Clean.IsZero() {
		return nil, core.NewParamError("export", "result", "empty", "must hold signals", core.ErrEmptySignal)
	}

	series := []core.TimeSeries{res.Noise.Sum, res.Noisy, res.FIRFiltered, res.IIRFiltered}
	for _, s := range series {
		if err := res.Clean.CheckAligned("export", s); err != nil {
			return nil, err
		}
	}

	clean := res.Clean.Samples()
	noise := res.Noise.Sum.Samples()
	noisy := res.Noisy.Samples()
	fir := res.FIRFiltered.Samples()
	iir := res.IIRFiltered.Samples()

	rows := make([]SignalRow, len(clean))
	for i := range rows {
		rows[i] = SignalRow{
			Time:  res.Clean.Time(i),
			Clean: clean[i],
			Noise: noise[i],
			Noisy: noisy[i],
			FIR:   fir[i],
			IIR:   iir[i],
		}
	}
	return rows, nil
}

// Responses flattens the labelled filter responses of res in order.
func Responses(res *pipeline.Result) []ResponseRow {
	if res == nil {
		return nil
	}

	var n int
	for _, r := range res.Responses {
		n += len(r.Points)
	}
	rows := make([]ResponseRow, 0, n)
	for _, r := range res.Responses {
		for _, p := range r.Points {
			rows = append(rows, ResponseRow{Filter: r.Label, FreqHz: p.FreqHz, Magnitude: p.Magnitude})
		}
	}
	return rows
}

// WriteSignals writes the signals of res as a parquet file.
func WriteSignals(w io.Writer, res *pipeline.Result, opts ...Option) error {
	rows, err := Signals(res)
	if err != nil {
		return err
	}
	return writeRows(w, rows, newConfig(opts))
}

// WriteResponses writes the filter responses of res as a parquet file.
func WriteResponses(w io.Writer, res *pipeline.Result, opts ...Option) error {
	return writeRows(w, Responses(res), newConfig(opts))
}

// ReadSignals reads a file written by WriteSignals.
func ReadSignals(ra io.ReaderAt) ([]SignalRow, error) {
	return readRows[SignalRow](ra)
}

// ReadResponses reads a file written by WriteResponses.
func ReadResponses(ra io.ReaderAt) ([]ResponseRow, error) {
	return readRows[ResponseRow](ra)
}

func writeRows[T any](w io.Writer, rows []T, cfg config) error {
	pw := parquet.NewGenericWriter[T](w, cfg.compression)
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("export: write rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("export: close writer: %w", err)
	}
	return nil
}

func readRows[T any](ra io.ReaderAt) ([]T, error) {
	gr := parquet.NewGenericReader[T](ra)
	defer gr.Close()

	out := make([]T, 0, gr.NumRows())
	batch := make([]T, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export: read rows: %w", err)
		}
	}
	return out, nil
}
