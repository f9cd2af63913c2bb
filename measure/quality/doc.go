// Package quality scores a denoised signal against its clean reference.
//
// SNRdB and MSE compare two aligned series sample by sample. Evaluate
// assembles the Report for one denoising run: the SNR of the noisy input and
// of both filter cascades, their mean squared errors, and the residual
// power-line tone left in each signal.
package quality
