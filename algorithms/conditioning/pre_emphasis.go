package conditioning

import (
	"fmt"
)

// PreEmphasis implements a first-order pre-emphasis filter.
// Pre-emphasis flattens the natural spectral tilt of voiced speech
// before cepstral analysis.
//
// The filter implements the difference equation:
// y[n] = x[n] - α*x[n-1], with y[0] = x[0]
//
// Where α is the pre-emphasis coefficient (0.97 for speech).
type PreEmphasis struct {
	coefficient float64
}

// NewPreEmphasis creates a pre-emphasis filter with the given coefficient
func NewPreEmphasis(coefficient float64) (*PreEmphasis, error) {
	if coefficient <= 0.0 || coefficient >= 1.0 {
		return nil, fmt.Errorf("coefficient must be between 0 and 1, got %f", coefficient)
	}
	return &PreEmphasis{coefficient: coefficient}, nil
}

// NewPreEmphasisDefault creates a pre-emphasis filter with the standard
// speech coefficient (0.97)
func NewPreEmphasisDefault() *PreEmphasis {
	return &PreEmphasis{coefficient: 0.97}
}

// ProcessBuffer applies pre-emphasis to an entire buffer of samples.
// The output has the same length as the input and the first sample
// passes through unchanged.
func (pe *PreEmphasis) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	if len(input) == 0 {
		return output
	}

	output[0] = input[0]
	for n := 1; n < len(input); n++ {
		output[n] = input[n] - pe.coefficient*input[n-1]
	}

	return output
}

// GetCoefficient returns the pre-emphasis coefficient
func (pe *PreEmphasis) GetCoefficient() float64 {
	return pe.coefficient
}
