// Package spectrum evaluates signals and filters in the frequency domain.
//
// [MagnitudeSpectrum] is the unnormalized |DFT| of a whole signal over
// [0, Nyquist). [FrequencyResponse] evaluates |H(e^jw)| of a designed filter
// on a uniform grid that excludes Nyquist. [ToneAmplitude] measures a single
// frequency with the Goertzel recursion, e.g. residual mains hum after
// filtering.
package spectrum
