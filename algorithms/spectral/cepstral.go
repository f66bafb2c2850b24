package spectral

import (
	"fmt"
	"math"
)

// melEnergyFloor keeps silent frames from producing -Inf log energies.
const melEnergyFloor = 1e-10

// Cepstral computes mel-cepstral coefficients from windowed frames.
// Each frame becomes fftSize/2+1 power bins, 40 log-mel energies, and
// finally numCoefficients cosine-projection coefficients.
type Cepstral struct {
	numCoefficients int
	numBands        int
	sampleRate      int
	fftSize         int

	power     *PowerSpectrum
	cache     *FilterBankCache
	dctMatrix [][]float64
}

// CepstralParams contains parameters for cepstral computation
type CepstralParams struct {
	NumCoefficients int `json:"num_coefficients"` // Coefficients per frame (default: 13)
	NumBands        int `json:"num_bands"`        // Mel bands (default: 40)
	FFTSize         int `json:"fft_size"`         // Transform size (default: 512)
}

// NewCepstral creates a cepstral computer. The filter bank cache is
// shared, read-only state; passing the same cache to every computer
// amortizes bank construction across analyses.
func NewCepstral(sampleRate int, params CepstralParams, cache *FilterBankCache) (*Cepstral, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if params.NumCoefficients <= 0 {
		params.NumCoefficients = 13
	}
	if params.NumBands <= 0 {
		params.NumBands = 40
	}
	if params.FFTSize <= 0 {
		params.FFTSize = 512
	}
	if params.NumCoefficients > params.NumBands {
		return nil, fmt.Errorf("cannot take %d coefficients from %d mel bands",
			params.NumCoefficients, params.NumBands)
	}

	c := &Cepstral{
		numCoefficients: params.NumCoefficients,
		numBands:        params.NumBands,
		sampleRate:      sampleRate,
		fftSize:         params.FFTSize,
		power:           NewPowerSpectrum(params.FFTSize),
		cache:           cache,
	}
	c.createDCTMatrix()

	return c, nil
}

// createDCTMatrix creates the cosine projection matrix.
// Coefficient i of a frame is sum_k logmel[k]*cos(pi*i/numBands*(k+0.5)).
func (c *Cepstral) createDCTMatrix() {
	c.dctMatrix = make([][]float64, c.numCoefficients)
	for i := range c.numCoefficients {
		c.dctMatrix[i] = make([]float64, c.numBands)
		for k := range c.numBands {
			c.dctMatrix[i][k] = math.Cos(math.Pi * float64(i) / float64(c.numBands) * (float64(k) + 0.5))
		}
	}
}

// ComputeFrame computes the coefficient vector for one windowed frame
func (c *Cepstral) ComputeFrame(frame []float64) []float64 {
	powerSpectrum := c.power.Compute(frame)

	bank := c.cache.Get(FilterBankKey{
		SampleRate: c.sampleRate,
		FFTSize:    c.fftSize,
		NumBands:   c.numBands,
	})

	melEnergies := NewMelScale().ApplyFilterBank(powerSpectrum, bank)

	logMel := make([]float64, len(melEnergies))
	for i, e := range melEnergies {
		if e < melEnergyFloor {
			e = melEnergyFloor
		}
		logMel[i] = math.Log(e)
	}

	coeffs := make([]float64, c.numCoefficients)
	for i := range c.numCoefficients {
		sum := 0.0
		for k := 0; k < len(logMel) && k < c.numBands; k++ {
			sum += logMel[k] * c.dctMatrix[i][k]
		}
		coeffs[i] = sum
	}

	return coeffs
}

// ComputeFrames computes the coefficient matrix (frames x coefficients)
// for a windowed frame matrix
func (c *Cepstral) ComputeFrames(frames [][]float64) [][]float64 {
	coeffs := make([][]float64, len(frames))
	for t, frame := range frames {
		coeffs[t] = c.ComputeFrame(frame)
	}
	return coeffs
}

// GetNumCoefficients returns the number of coefficients per frame
func (c *Cepstral) GetNumCoefficients() int {
	return c.numCoefficients
}
