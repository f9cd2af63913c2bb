// Package zerophase applies designed filters forward and backward so the
// output has no phase shift.
//
// [Apply] extends the signal at both ends by odd reflection, starts each
// pass from the filter's steady state scaled by the first sample, runs the
// filter forward, reverses, runs it again and trims the extension. The net
// magnitude response is |H|^2 and the net phase is zero. IIR designs are
// run section by section, which keeps high-order low-corner filters
// numerically sound; FIR designs are convolved through dsp/conv.
//
// [Cascade] chains several zero-phase filters, [Forward] runs one causal
// pass for comparison.
package zerophase
