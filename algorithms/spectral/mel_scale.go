package spectral

import (
	"math"
)

// MelScale provides mel frequency conversion and triangular filter bank
// construction for the log-mel cepstral front end
type MelScale struct {
	// No state needed - pure conversions
}

// NewMelScale creates a new mel scale converter
func NewMelScale() *MelScale {
	return &MelScale{}
}

// HzToMel converts frequency in Hz to mel scale
func (ms *MelScale) HzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

// MelToHz converts mel scale to frequency in Hz
func (ms *MelScale) MelToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// CreateFilterBank creates a triangular mel filter bank. Each row is one
// band of fftSize/2+1 weights. The filter edges follow the
// floor((fftSize+1)*hz/sampleRate) bin mapping with epsilon-stabilized
// slopes, so degenerate (zero-width) bands produce zero weights rather
// than a division fault.
func (ms *MelScale) CreateFilterBank(numBands, fftSize, sampleRate int, lowFreq, highFreq float64) [][]float64 {
	if numBands <= 0 || fftSize <= 0 {
		return nil
	}

	numBins := fftSize/2 + 1

	// Equally spaced points on the mel axis, band edges included
	lowMel := ms.HzToMel(lowFreq)
	highMel := ms.HzToMel(highFreq)
	melStep := (highMel - lowMel) / float64(numBands+1)

	binPoints := make([]int, numBands+2)
	for i := range binPoints {
		hz := ms.MelToHz(lowMel + float64(i)*melStep)
		binPoints[i] = int(math.Floor(float64(fftSize+1) * hz / float64(sampleRate)))
	}

	filterBank := make([][]float64, numBands)
	for m := 1; m <= numBands; m++ {
		filterBank[m-1] = make([]float64, numBins)

		leftBin := binPoints[m-1]
		centerBin := binPoints[m]
		rightBin := binPoints[m+1]

		// Rising edge
		for k := leftBin; k < centerBin && k < numBins; k++ {
			filterBank[m-1][k] = float64(k-leftBin) / (float64(centerBin-leftBin) + 1e-10)
		}

		// Falling edge
		for k := centerBin; k < rightBin && k < numBins; k++ {
			filterBank[m-1][k] = float64(rightBin-k) / (float64(rightBin-centerBin) + 1e-10)
		}
	}

	return filterBank
}

// ApplyFilterBank applies the filter bank to a power spectrum, producing
// one energy per mel band
func (ms *MelScale) ApplyFilterBank(powerSpectrum []float64, filterBank [][]float64) []float64 {
	melEnergies := make([]float64, len(filterBank))

	for i, filter := range filterBank {
		sum := 0.0
		for k := 0; k < len(filter) && k < len(powerSpectrum); k++ {
			sum += powerSpectrum[k] * filter[k]
		}
		melEnergies[i] = sum
	}

	return melEnergies
}
