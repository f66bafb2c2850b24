package spectral

import (
	"math/cmplx"
)

// PowerSpectrum computes fixed-size power spectra from windowed frames.
// Frames longer than the transform size are truncated to it before the
// FFT; the result keeps the positive-frequency bins only (fftSize/2+1).
type PowerSpectrum struct {
	fftSize int
	fft     *FFT
}

// NewPowerSpectrum creates a power spectrum calculator with the given
// transform size
func NewPowerSpectrum(fftSize int) *PowerSpectrum {
	if fftSize <= 0 {
		fftSize = 512
	}
	return &PowerSpectrum{
		fftSize: fftSize,
		fft:     NewFFT(),
	}
}

// NumBins returns the number of positive-frequency bins
func (ps *PowerSpectrum) NumBins() int {
	return ps.fftSize/2 + 1
}

// BinFrequencies returns the center frequency of each bin in Hz
func (ps *PowerSpectrum) BinFrequencies(sampleRate int) []float64 {
	freqs := make([]float64, ps.NumBins())
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / float64(ps.fftSize)
	}
	return freqs
}

// Compute computes the magnitude-squared spectrum of a single frame
func (ps *PowerSpectrum) Compute(frame []float64) []float64 {
	buf := make([]float64, ps.fftSize)
	copy(buf, frame) // truncates frames longer than the transform size

	spectrum := ps.fft.Compute(buf)

	power := make([]float64, ps.NumBins())
	for k := range power {
		mag := cmplx.Abs(spectrum[k])
		power[k] = mag * mag
	}

	return power
}

// ComputeFrames processes a whole frame matrix
func (ps *PowerSpectrum) ComputeFrames(frames [][]float64) [][]float64 {
	power := make([][]float64, len(frames))
	for t, frame := range frames {
		power[t] = ps.Compute(frame)
	}
	return power
}
