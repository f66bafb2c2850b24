package pitch

import (
	"math"

	"github.com/crewsight/vocalis/algorithms/stats"
)

// minVoicedFrames is the perturbation fallback boundary: with fewer
// voiced frames than this, jitter and shimmer are reported as 0 rather
// than estimated from too little data.
const minVoicedFrames = 4

// PerturbationFeatures contains cycle-to-cycle voice perturbation
// measures computed from voiced-frame pitch periods and amplitudes
type PerturbationFeatures struct {
	JitterLocal  float64 `json:"jitter_local"`  // Mean |period delta| / mean period
	JitterRAP    float64 `json:"jitter_rap"`    // Relative average perturbation (3-point)
	ShimmerLocal float64 `json:"shimmer_local"` // Mean |amplitude delta| / mean amplitude
	ShimmerDB    float64 `json:"shimmer_db"`    // 20*log10(1+shimmer)
}

// ComputePerturbation derives jitter and shimmer from an F0 track and
// the raw frame matrix it was estimated from. Periods come from voiced
// F0 estimates, amplitudes from the RMS of the corresponding raw
// frames. Recordings with fewer than four voiced frames report all-zero
// measures.
func ComputePerturbation(f0Track []float64, frames [][]float64) *PerturbationFeatures {
	var periods []float64
	for _, f0 := range f0Track {
		if f0 > 0 {
			periods = append(periods, 1.0/f0)
		}
	}

	if len(periods) < minVoicedFrames {
		return &PerturbationFeatures{}
	}

	meanPeriod := stats.Mean(periods)

	diffSum := 0.0
	for i := 1; i < len(periods); i++ {
		diffSum += math.Abs(periods[i] - periods[i-1])
	}
	jitterLocal := (diffSum / float64(len(periods)-1)) / (meanPeriod + 1e-12)

	// Relative average perturbation against 3-point local means
	rapSum := 0.0
	for i := 1; i < len(periods)-1; i++ {
		local := (periods[i-1] + periods[i] + periods[i+1]) / 3.0
		rapSum += math.Abs(periods[i] - local)
	}
	jitterRAP := (rapSum / float64(len(periods)-2)) / meanPeriod

	// Voiced-frame RMS amplitudes
	var amplitudes []float64
	limit := len(frames)
	if len(f0Track) < limit {
		limit = len(f0Track)
	}
	for t := range limit {
		if f0Track[t] > 0 {
			amplitudes = append(amplitudes, stats.RMS(frames[t])+1e-12)
		}
	}

	if len(amplitudes) < 2 {
		return &PerturbationFeatures{
			JitterLocal: jitterLocal,
			JitterRAP:   jitterRAP,
		}
	}

	meanAmp := stats.Mean(amplitudes)
	ampDiffSum := 0.0
	for i := 1; i < len(amplitudes); i++ {
		ampDiffSum += math.Abs(amplitudes[i] - amplitudes[i-1])
	}
	shimmerLocal := (ampDiffSum / float64(len(amplitudes)-1)) / meanAmp

	return &PerturbationFeatures{
		JitterLocal:  jitterLocal,
		JitterRAP:    jitterRAP,
		ShimmerLocal: shimmerLocal,
		ShimmerDB:    20.0 * math.Log10(1.0+shimmerLocal+1e-12),
	}
}
