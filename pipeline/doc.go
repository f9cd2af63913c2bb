// Package pipeline runs one ECG denoising experiment end to end.
//
// A run is a fixed sequence of stages: generate the clean waveform,
// synthesize noise, compose the noisy signal, design and apply the FIR
// cascade, design and apply the IIR cascade, analyze spectra and filter
// responses, and score the outputs. Each stage consumes the values produced
// by earlier stages; nothing is shared between runs.
//
// Stages are logged at debug level through the *zap.Logger passed with
// WithLogger. A failed stage aborts the run with a *StageError.
package pipeline
