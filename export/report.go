package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-ecg/measure/quality"
	"github.com/cwbudde/algo-ecg/pipeline"
)

// ReportDocument is the JSON form of a run summary.
type ReportDocument struct {
	Params pipeline.Params      `json:"params"`
	Report quality.Report       `json:"report"`
	Stats  pipeline.SignalStats `json:"signal_stats"`
	Stages []string             `json:"stages"`
}

// NewReportDocument summarizes res.
func NewReportDocument(res *pipeline.Result) ReportDocument {
	doc := ReportDocument{Params: res.Params, Report: res.Report, Stats: res.Stats}
	for _, s := range res.Stages {
		doc.Stages = append(doc.Stages, string(s))
	}
	return doc
}

// WriteReportJSON writes the indented JSON summary of res.
func WriteReportJSON(w io.Writer, res *pipeline.Result) error {
	if res == nil {
		return errors.New("export: nil result")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReportDocument(res)); err != nil {
		return fmt.Errorf("export: encode report: %w", err)
	}
	return nil
}
