// Command lowpass analyses and low-pass filters synthetic test signals.
//
// Usage:
//
//	lowpass spectrum [--window hann] [--top 5] [--filter iir|fir]
//	lowpass iir [--cutoff 10] [--order 4] [--zero-phase] [--sections]
//	lowpass fir [--cutoff 10] [--transition-width 5] [--ripple 20]
//	lowpass demo
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-lowpass/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lowpass: %v\n", err)
		os.Exit(1)
	}
}
