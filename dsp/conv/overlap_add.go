package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-lowpass/dsp/core"
)

// OverlapAdd convolves long signals with a fixed kernel using FFT blocks.
//
// The input is cut into non-overlapping blocks, each block is zero-padded to
// the FFT size, multiplied with the kernel spectrum, transformed back, and
// added into the output at its offset.
type OverlapAdd struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	fftSize   int

	plan *algofft.Plan[complex128]

	block []complex128
	spec  []complex128
}

// NewOverlapAdd prepares a convolver for kernel. A blockSize of 0 picks the
// next power of two at or above the kernel length, at least 256.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if blockSize < 0 {
		return nil, fmt.Errorf("conv: block size must be >= 0: %d: %w", blockSize, core.ErrInvalidParameter)
	}

	if blockSize == 0 {
		blockSize = max(nextPowerOf2(len(kernel)), 256)
	}

	fftSize := nextPowerOf2(blockSize + len(kernel) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: FFT plan of size %d: %v: %w", fftSize, err, core.ErrInvalidParameter)
	}

	oa := &OverlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: len(kernel),
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		block:     make([]complex128, fftSize),
		spec:      make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}

	if err := plan.Forward(oa.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("conv: kernel FFT: %v: %w", err, core.ErrNumericInstability)
	}

	return oa, nil
}

// BlockSize returns the input block size.
func (oa *OverlapAdd) BlockSize() int { return oa.blockSize }

// FFTSize returns the transform size.
func (oa *OverlapAdd) FFTSize() int { return oa.fftSize }

// KernelLen returns the kernel length.
func (oa *OverlapAdd) KernelLen() int { return oa.kernelLen }

// Process returns the full linear convolution of input with the kernel,
// len(input) + KernelLen() - 1 samples. Not safe for concurrent use.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	outLen := len(input) + oa.kernelLen - 1
	output := make([]float64, outLen)

	for start := 0; start < len(input); start += oa.blockSize {
		end := min(start+oa.blockSize, len(input))

		clear(oa.block)
		for i, v := range input[start:end] {
			oa.block[i] = complex(v, 0)
		}

		if err := oa.plan.Forward(oa.spec, oa.block); err != nil {
			return nil, fmt.Errorf("conv: forward FFT: %v: %w", err, core.ErrNumericInstability)
		}

		for i := range oa.spec {
			oa.spec[i] *= oa.kernelFFT[i]
		}

		if err := oa.plan.Inverse(oa.block, oa.spec); err != nil {
			return nil, fmt.Errorf("conv: inverse FFT: %v: %w", err, core.ErrNumericInstability)
		}

		n := min(end-start+oa.kernelLen-1, outLen-start)
		for i := range n {
			output[start+i] += real(oa.block[i])
		}
	}

	return output, nil
}

// OverlapAddConvolve performs one-shot overlap-add convolution.
func OverlapAddConvolve(signal, kernel []float64) ([]float64, error) {
	oa, err := NewOverlapAdd(kernel, 0)
	if err != nil {
		return nil, err
	}

	return oa.Process(signal)
}
