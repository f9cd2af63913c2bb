// Package signal generates deterministic test and source waveforms on a
// uniform time grid: sinusoids and a synthetic PQRST-shaped ECG.
//
// The ECG generator is a stand-in for an external waveform source. It sums
// Gaussian P, Q, R, S and T waves positioned on the cardiac phase, with a
// seeded beat-to-beat heart-rate variation.
package signal
