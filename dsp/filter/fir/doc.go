// Package fir designs windowed-sinc low-pass FIR filters and applies them by
// convolution.
//
// Design follows Kaiser's method: a stop-band attenuation and a transition
// width fix the tap count ([KaiserOrder]) and the window shape β
// ([KaiserBeta]); [WindowedSinc] then tapers the ideal low-pass impulse
// response with that window and normalizes it to unity DC gain.
//
// [Apply] convolves causally and keeps the first len(x) output samples, so
// the output trails the input by the constant group delay (N-1)/2. Short
// kernels run through the direct-form [Filter]; long ones go through FFT
// overlap-add from dsp/conv.
package fir
