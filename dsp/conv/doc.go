// Package conv provides linear convolution and cross-correlation of real
// sequences.
//
// Two convolution strategies are offered:
//
//   - [Direct]: O(N*M) time-domain convolution, best for short kernels
//   - [OverlapAdd]: FFT block convolution, efficient once the kernel is long
//
// [Convolve] picks between them by kernel length. The FIR low-pass in
// dsp/filter/fir uses the same split.
//
// # Correlation
//
// Cross-correlation measures how well two signals line up as a function of
// displacement:
//
//	corr, err := conv.Correlate(filtered, reference)
//	lag := conv.PeakLag(corr, len(reference))
//
// A positive lag means the first signal trails the second.
package conv
