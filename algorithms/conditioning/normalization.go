package conditioning

import (
	"math"
)

// peakEpsilon keeps the peak division defined for all-zero buffers.
const peakEpsilon = 1e-9

// PeakNormalize scales the signal so any non-silent input has a peak
// magnitude of approximately 1. An all-zero buffer maps to an all-zero
// buffer; no NaN or Inf is ever produced.
func PeakNormalize(signal []float64) []float64 {
	peak := 0.0
	for _, s := range signal {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	normalized := make([]float64, len(signal))
	for i, s := range signal {
		normalized[i] = s / (peak + peakEpsilon)
	}

	return normalized
}
