// Package spectrum computes centred discrete Fourier spectra of real signals
// and provides helpers over the resulting complex bins.
//
// [Transform] derives the transform length from a sample rate and a duration,
// evaluates a DFT of that arbitrary length (Bluestein for non-powers of two)
// and rotates both the frequency axis and the bins so that DC sits at index
// floor(N/2):
//
//	res, err := spectrum.Transform(x, 80, 5)
//	peak := res.Dominant() // strongest non-negative frequency
package spectrum
