package pitch

import (
	"github.com/crewsight/vocalis/algorithms/stats"
	"github.com/crewsight/vocalis/algorithms/windowing"
)

// Voicing acceptance is a fixed design constant: a frame is voiced only
// if its best autocorrelation peak reaches this fraction of the
// zero-lag energy.
const voicingThreshold = 0.3

// clipRatio suppresses low-level noise before autocorrelation: samples
// below this fraction of the frame peak are zeroed.
const clipRatio = 0.3

// F0Estimator estimates the per-frame fundamental frequency by
// center-clipped autocorrelation, searching the lag range that
// corresponds to the configured pitch band.
type F0Estimator struct {
	sampleRate int
	minF0      float64
	maxF0      float64
	window     *windowing.Hamming
}

// NewF0Estimator creates an estimator for frames of the given length,
// searching the pitch band [minF0, maxF0] Hz
func NewF0Estimator(sampleRate, frameLen int, minF0, maxF0 float64) *F0Estimator {
	return &F0Estimator{
		sampleRate: sampleRate,
		minF0:      minF0,
		maxF0:      maxF0,
		window:     windowing.NewHamming(frameLen),
	}
}

// EstimateFrame returns the fundamental frequency for one raw frame, or
// 0 for an unvoiced (or degenerate) frame. Every non-zero estimate lies
// within [minF0, maxF0].
func (e *F0Estimator) EstimateFrame(frame []float64) float64 {
	windowed := e.window.Apply(frame)
	if windowed == nil {
		return 0.0
	}

	// Center clipping
	peak := 0.0
	for _, s := range windowed {
		if a := abs(s); a > peak {
			peak = a
		}
	}
	threshold := clipRatio * peak
	clipped := make([]float64, len(windowed))
	for i, s := range windowed {
		if abs(s) > threshold {
			clipped[i] = s
		}
	}

	lagMin := int(float64(e.sampleRate) / e.maxF0)
	lagMax := int(float64(e.sampleRate) / e.minF0)
	if lagMax > len(clipped)-1 {
		lagMax = len(clipped) - 1
	}
	if lagMin >= lagMax {
		return 0.0
	}

	corr := autocorrelateLags(clipped, lagMax)
	if corr[0] < 1e-12 {
		return 0.0
	}

	// Local maxima strictly inside the search range, non-negative height
	bestLag := 0
	bestVal := 0.0
	found := false
	for lag := lagMin + 1; lag <= lagMax-2; lag++ {
		if corr[lag] >= 0 && corr[lag] > corr[lag-1] && corr[lag] > corr[lag+1] {
			if !found || corr[lag] > bestVal {
				bestLag = lag
				bestVal = corr[lag]
				found = true
			}
		}
	}
	if !found {
		return 0.0
	}

	if corr[bestLag]/(corr[0]+1e-12) < voicingThreshold {
		return 0.0
	}

	return float64(e.sampleRate) / float64(bestLag)
}

// Track estimates the F0 track for a raw frame matrix; 0 denotes an
// unvoiced frame
func (e *F0Estimator) Track(frames [][]float64) []float64 {
	track := make([]float64, len(frames))
	for t, frame := range frames {
		track[t] = e.EstimateFrame(frame)
	}
	return track
}

// TrackStats contains F0 track aggregates over voiced frames
type TrackStats struct {
	Mean        float64 `json:"mean"`         // Mean F0 over voiced frames (Hz)
	Std         float64 `json:"std"`          // Population std over voiced frames
	Range       float64 `json:"range"`        // max - min over voiced frames
	Slope       float64 `json:"slope"`        // Least-squares drift per voiced frame
	VoicedRatio float64 `json:"voiced_ratio"` // Voiced frames / total frames
}

// ComputeTrackStats aggregates an F0 track. Mean and std need at least
// one voiced frame, range at least two, slope at least three; anything
// below those thresholds reports 0.
func ComputeTrackStats(track []float64) *TrackStats {
	voiced := make([]float64, 0, len(track))
	for _, f0 := range track {
		if f0 > 0 {
			voiced = append(voiced, f0)
		}
	}

	ts := &TrackStats{
		VoicedRatio: float64(len(voiced)) / (float64(len(track)) + 1e-6),
	}
	if len(voiced) > 0 {
		ts.Mean = stats.Mean(voiced)
		ts.Std = stats.StdDev(voiced)
	}
	if len(voiced) > 1 {
		ts.Range = stats.Range(voiced)
	}
	if len(voiced) > 2 {
		ts.Slope = stats.Slope(voiced)
	}

	return ts
}

// autocorrelateLags computes one-sided autocorrelation sums for lags
// 0..maxLag
func autocorrelateLags(signal []float64, maxLag int) []float64 {
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

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
