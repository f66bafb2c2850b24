package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/crewsight/vocalis/algorithms/stats"
)

// ShapeAnalyzer computes per-frame spectral shape statistics and their
// recording-level aggregates: centroid, spread, flux, rolloff, flatness,
// zero-crossing rate, and short-term energy.
type ShapeAnalyzer struct {
	sampleRate     int
	rolloffPercent float64
	power          *PowerSpectrum
	freqs          []float64
}

// ShapeStats contains recording-level spectral shape aggregates
type ShapeStats struct {
	CentroidMean  float64 `json:"centroid_mean"`  // Power-weighted mean frequency (Hz)
	CentroidStd   float64 `json:"centroid_std"`   //
	SpreadMean    float64 `json:"spread_mean"`    // Power-weighted deviation around centroid
	FluxMean      float64 `json:"flux_mean"`      // Frame-to-frame spectral change
	FluxStd       float64 `json:"flux_std"`       //
	RolloffMean   float64 `json:"rolloff_mean"`   // 85% cumulative-power frequency (Hz)
	FlatnessMean  float64 `json:"flatness_mean"`  // Geometric/arithmetic mean ratio
	ZCRMean       float64 `json:"zcr_mean"`       // Zero-crossing rate
	ZCRStd        float64 `json:"zcr_std"`        //
	EnergyMean    float64 `json:"energy_mean"`    // Short-term energy
	EnergyStd     float64 `json:"energy_std"`     //
	EnergyDynamic float64 `json:"energy_dynamic"` // max/mean energy ratio
}

// NewShapeAnalyzer creates a spectral shape analyzer for the given
// sample rate and transform size
func NewShapeAnalyzer(sampleRate, fftSize int) *ShapeAnalyzer {
	power := NewPowerSpectrum(fftSize)
	return &ShapeAnalyzer{
		sampleRate:     sampleRate,
		rolloffPercent: 0.85,
		power:          power,
		freqs:          power.BinFrequencies(sampleRate),
	}
}

// Compute calculates recording-level shape statistics. The windowed
// frames feed the spectral measures; zero-crossing rate and short-term
// energy come from the raw (unwindowed) frames of the same matrix.
func (sa *ShapeAnalyzer) Compute(rawFrames, windowedFrames [][]float64) *ShapeStats {
	numFrames := len(windowedFrames)
	if numFrames == 0 || numFrames != len(rawFrames) {
		return &ShapeStats{}
	}

	centroid := make([]float64, numFrames)
	spread := make([]float64, numFrames)
	flux := make([]float64, numFrames)
	rolloff := make([]float64, numFrames)
	flatness := make([]float64, numFrames)
	zcr := make([]float64, numFrames)
	energy := make([]float64, numFrames)

	var prevPower []float64
	for t, frame := range windowedFrames {
		power := sa.power.Compute(frame)
		psum := floats.Sum(power) + 1e-12

		centroid[t] = floats.Dot(power, sa.freqs) / psum

		spreadSum := 0.0
		for k, p := range power {
			d := sa.freqs[k] - centroid[t]
			spreadSum += p * d * d
		}
		spread[t] = math.Sqrt(spreadSum / psum)

		// First frame has no predecessor; its flux is 0 by definition
		if t > 0 {
			flux[t] = floats.Distance(power, prevPower, 2)
		}
		prevPower = power

		rolloff[t] = sa.rolloffFrequency(power)
		flatness[t] = spectralFlatness(power)

		zcr[t] = ZeroCrossingRate(rawFrames[t])
		energy[t] = stats.MeanSquare(rawFrames[t])
	}

	return &ShapeStats{
		CentroidMean:  stats.Mean(centroid),
		CentroidStd:   stats.StdDev(centroid),
		SpreadMean:    stats.Mean(spread),
		FluxMean:      stats.Mean(flux),
		FluxStd:       stats.StdDev(flux),
		RolloffMean:   stats.Mean(rolloff),
		FlatnessMean:  stats.Mean(flatness),
		ZCRMean:       stats.Mean(zcr),
		ZCRStd:        stats.StdDev(zcr),
		EnergyMean:    stats.Mean(energy),
		EnergyStd:     stats.StdDev(energy),
		EnergyDynamic: stats.Max(energy) / (stats.Mean(energy) + 1e-12),
	}
}

// rolloffFrequency returns the lowest bin frequency at which the
// cumulative power reaches the rolloff fraction of the total
func (sa *ShapeAnalyzer) rolloffFrequency(power []float64) float64 {
	total := floats.Sum(power)
	target := sa.rolloffPercent * total

	cumulative := 0.0
	for k, p := range power {
		cumulative += p
		if cumulative >= target {
			return sa.freqs[k]
		}
	}

	return sa.freqs[len(power)-1]
}

// spectralFlatness computes the geometric-to-arithmetic mean ratio of a
// power spectrum. Tonal frames score near 0, noise-like frames near 1.
func spectralFlatness(power []float64) float64 {
	if len(power) == 0 {
		return 0.0
	}

	logSum := 0.0
	arithSum := 0.0
	for _, p := range power {
		logSum += math.Log(p + 1e-12)
		arithSum += p
	}

	n := float64(len(power))
	return math.Exp(logSum/n) / (arithSum/n + 1e-12)
}

// ZeroCrossingRate measures sign-change density over a frame: the mean
// absolute signum difference between neighboring samples, halved so one
// full crossing counts once.
func ZeroCrossingRate(frame []float64) float64 {
	if len(frame) < 2 {
		return 0.0
	}

	sum := 0.0
	for i := 1; i < len(frame); i++ {
		sum += math.Abs(signum(frame[i]) - signum(frame[i-1]))
	}

	return sum / (2.0 * float64(len(frame)-1))
}

func signum(x float64) float64 {
	if x > 0 {
		return 1.0
	}
	if x < 0 {
		return -1.0
	}
	return 0.0
}
