package speech

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/crewsight/vocalis/algorithms/stats"
	"github.com/crewsight/vocalis/algorithms/windowing"
)

// energyFloor guards the recursion against near-silent frames and
// near-unity reflection coefficients.
const energyFloor = 1e-12

// LPCAnalyzer performs per-frame Linear Predictive Coding analysis.
// LPC models the vocal tract as an all-pole filter; the residual energy
// and the frame-to-frame drift of the coefficient vectors serve as
// articulation-stability measures.
type LPCAnalyzer struct {
	order  int
	window *windowing.Hamming
}

// LPCFeatures contains recording-level LPC aggregates
type LPCFeatures struct {
	ErrorMean float64 `json:"error_mean"` // Mean per-frame residual energy
	ErrorStd  float64 `json:"error_std"`  // Population std of residual energy
	Flux      float64 `json:"flux"`       // Mean distance between consecutive coefficient vectors
}

// NewLPCAnalyzer creates an LPC analyzer for frames of the given length
func NewLPCAnalyzer(order, frameLen int) (*LPCAnalyzer, error) {
	if order <= 0 {
		return nil, fmt.Errorf("LPC order must be positive, got %d", order)
	}
	if frameLen <= order {
		return nil, fmt.Errorf("frame length %d too short for LPC order %d", frameLen, order)
	}

	return &LPCAnalyzer{
		order:  order,
		window: windowing.NewHamming(frameLen),
	}, nil
}

// ComputeFrame estimates the LPC coefficient vector for one frame via
// the Levinson-Durbin recursion on the windowed frame's
// autocorrelation. The result always has exactly order entries; a
// near-silent frame (zero-lag autocorrelation below the energy floor)
// yields an all-zero vector instead of an error.
func (lpc *LPCAnalyzer) ComputeFrame(frame []float64) []float64 {
	a := make([]float64, lpc.order)

	windowed := lpc.window.Apply(frame)
	if windowed == nil {
		return a
	}

	r := autocorrelate(windowed, lpc.order)
	if r[0] < energyFloor {
		return a
	}

	e := r[0]
	for i := range lpc.order {
		acc := 0.0
		for j := range i {
			acc += a[j] * r[i-j]
		}
		lam := (-acc - r[i+1]) / (e + energyFloor)

		next := make([]float64, lpc.order)
		next[i] = lam
		for j := range i {
			next[j] = a[j] + lam*a[i-1-j]
		}
		a = next

		e *= 1 - lam*lam
		if e < energyFloor {
			e = energyFloor
		}
	}

	return a
}

// ResidualEnergy inverse-filters the raw frame through [1, a1..ap] and
// returns the mean squared residual
func (lpc *LPCAnalyzer) ResidualEnergy(frame, coeffs []float64) float64 {
	if len(frame) == 0 {
		return 0.0
	}

	sum := 0.0
	for n := range frame {
		residual := frame[n]
		for k := 1; k <= len(coeffs) && k <= n; k++ {
			residual += coeffs[k-1] * frame[n-k]
		}
		sum += residual * residual
	}

	return sum / float64(len(frame))
}

// AnalyzeFrames computes the recording-level LPC aggregates for a raw
// (unwindowed) frame matrix
func (lpc *LPCAnalyzer) AnalyzeFrames(frames [][]float64) *LPCFeatures {
	if len(frames) == 0 {
		return &LPCFeatures{}
	}

	coeffs := make([][]float64, len(frames))
	errors := make([]float64, len(frames))
	for t, frame := range frames {
		coeffs[t] = lpc.ComputeFrame(frame)
		errors[t] = lpc.ResidualEnergy(frame, coeffs[t])
	}

	// Coefficient-trajectory flux; 0 when there is nothing to compare
	flux := 0.0
	if len(coeffs) > 1 {
		for t := 1; t < len(coeffs); t++ {
			flux += floats.Distance(coeffs[t], coeffs[t-1], 2)
		}
		flux /= float64(len(coeffs) - 1)
	}

	return &LPCFeatures{
		ErrorMean: stats.Mean(errors),
		ErrorStd:  stats.StdDev(errors),
		Flux:      flux,
	}
}

// GetOrder returns the LPC order
func (lpc *LPCAnalyzer) GetOrder() int {
	return lpc.order
}

// autocorrelate computes one-sided autocorrelation sums for lags
// 0..maxLag
func autocorrelate(signal []float64, maxLag int) []float64 {
	r := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag && lag < len(signal); lag++ {
		sum := 0.0
		for n := 0; n < len(signal)-lag; n++ {
			sum += signal[n] * signal[n+lag]
		}
		r[lag] = sum
	}
	return r
}
