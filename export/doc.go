// Package export writes pipeline results for offline analysis.
//
// Signals and filter responses are written as parquet files with one row
// per sample or per response point. The quality report and the parameters
// that produced it are written as JSON.
package export
