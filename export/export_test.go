package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/pipeline"
)

var (
	runOnce   sync.Once
	runResult *pipeline.Result
	runErr    error
)

func testResult(t *testing.T) *pipeline.Result {
	t.Helper()
	runOnce.Do(func() {
		params := pipeline.DefaultParams()
		params.DurationSeconds = 2
		params.ResponsePoints = 16
		runResult, runErr = pipeline.New().Run(context.Background(), params)
	})
	if runErr != nil {
		t.Fatalf("pipeline.Run: %v", runErr)
	}
	return runResult
}

func TestSignals(t *testing.T) {
	res := testResult(t)

	rows, err := Signals(res)
	if err != nil {
		t.Fatalf("Signals: %v", err)
	}
	if len(rows) != 720 {
		t.Fatalf("len = %d, want 720", len(rows))
	}

	i := 360
	want := SignalRow{
		Time:  1,
		Clean: res.Clean.At(i),
		Noise: res.Noise.Sum.At(i),
		Noisy: res.Noisy.At(i),
		FIR:   res.FIRFiltered.At(i),
		IIR:   res.IIRFiltered.At(i),
	}
	if diff := cmp.Diff(want, rows[i]); diff != "" {
		t.Fatalf("row %d mismatch (-want +got):\n%s", i, diff)
	}
}

func TestSignalsErrors(t *testing.T) {
	if _, err := Signals(nil); !errors.Is(err, core.ErrEmptySignal) {
		t.Fatalf("nil result: err = %v", err)
	}

	res := *testResult(t)
	res.FIRFiltered = core.MustTimeSeries([]float64{1, 2, 3}, 360)
	if _, err := Signals(&res); !errors.Is(err, core.ErrLengthMismatch) {
		t.Fatalf("misaligned result: err = %v", err)
	}
}

func TestSignalsRoundTrip(t *testing.T) {
	res := testResult(t)
	want, err := Signals(res)
	if err != nil {
		t.Fatal(err)
	}

	for _, codec := range []string{"zstd", "gzip", "snappy", "none"} {
		t.Run(codec, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteSignals(&buf, res, WithCompression(codec)); err != nil {
				t.Fatalf("WriteSignals: %v", err)
			}

			got, err := ReadSignals(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("ReadSignals: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResponsesRoundTrip(t *testing.T) {
	res := testResult(t)

	var buf bytes.Buffer
	if err := WriteResponses(&buf, res); err != nil {
		t.Fatalf("WriteResponses: %v", err)
	}
	got, err := ReadResponses(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadResponses: %v", err)
	}

	if len(got) != 6*16 {
		t.Fatalf("len = %d, want %d", len(got), 6*16)
	}
	if diff := cmp.Diff(Responses(res), got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got[0].Filter != "High-Pass FIR" || got[len(got)-1].Filter != "Low-Pass IIR" {
		t.Fatalf("unexpected filter order: first %q, last %q", got[0].Filter, got[len(got)-1].Filter)
	}
	if got[17].FreqHz != 360.0/32 {
		t.Fatalf("second point of second filter at %g Hz, want %g", got[17].FreqHz, 360.0/32)
	}
}

func TestWriteReportJSON(t *testing.T) {
	res := testResult(t)

	var buf bytes.Buffer
	if err := WriteReportJSON(&buf, res); err != nil {
		t.Fatalf("WriteReportJSON: %v", err)
	}

	var doc ReportDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(NewReportDocument(res), doc); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	if !bytes.Contains(buf.Bytes(), []byte(`"snr_fir_db"`)) {
		t.Fatalf("missing snr_fir_db field:\n%s", buf.String())
	}
	if err := WriteReportJSON(&buf, nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}
