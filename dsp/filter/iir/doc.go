// Package iir designs Butterworth low-pass filters and applies them as
// recursive (IIR) filters, either causally or with zero phase.
//
// Design goes through zeros, poles and gain ([ZPK]): the analog Butterworth
// prototype is scaled to the pre-warped cutoff and mapped to the z-plane with
// the bilinear transform. A [ZPK] expands to a single transfer function
// ([Coefficients], b and a polynomials) or factors into second-order
// sections for dsp/filter/biquad.
//
// Application follows the usual linear recursion
//
//	a[0]*y[n] = sum(b[i]*x[n-i]) - sum(a[j]*y[n-j], j >= 1)
//
// [Filter] runs it once, forward, from rest. [FiltFilt] runs it forward and
// then backward over an odd-symmetric extension of the signal, with the delay
// line seeded at its step-response steady state, which cancels the phase
// response and squares the magnitude response.
package iir
