// Package window generates tapering windows for spectral framing and for
// windowed-sinc FIR design.
//
// Symmetric windows (the default) suit filter design; [WithPeriodic] gives the
// periodic form that tiles cleanly under a DFT.
package window
