// Package noise synthesizes the additive disturbances that corrupt a
// surface ECG recording: 50 Hz power-line interference, broadband
// high-frequency noise and sub-hertz baseline wander.
//
// Randomness is always drawn from an injected *rand.Rand so runs are
// reproducible and concurrent runs never share a source.
package noise
