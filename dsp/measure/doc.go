// Package measure computes time-domain statistics of a signal and the
// residual between a filter's output and a clean reference.
package measure
