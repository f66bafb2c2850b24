package pitch

import (
	"math"

	"github.com/crewsight/vocalis/algorithms/stats"
	"github.com/crewsight/vocalis/algorithms/windowing"
)

// hnrRatioCeiling keeps the log-ratio finite for perfectly periodic
// frames.
const hnrRatioCeiling = 0.9999

// HNRAnalyzer measures the harmonic-to-noise ratio of a recording from
// per-frame autocorrelation: the ratio of the best in-band peak to the
// zero-lag energy, mapped to dB.
type HNRAnalyzer struct {
	sampleRate int
	minF0      float64
	maxF0      float64
	window     *windowing.Hamming
}

// NewHNRAnalyzer creates an analyzer for frames of the given length,
// searching the same lag band as the pitch estimator
func NewHNRAnalyzer(sampleRate, frameLen int, minF0, maxF0 float64) *HNRAnalyzer {
	return &HNRAnalyzer{
		sampleRate: sampleRate,
		minF0:      minF0,
		maxF0:      maxF0,
		window:     windowing.NewHamming(frameLen),
	}
}

// AnalyzeFrames returns the mean per-frame HNR in dB over frames with
// measurable energy; a recording with no valid frame reports 0.
func (h *HNRAnalyzer) AnalyzeFrames(frames [][]float64) float64 {
	var hnrs []float64

	for _, frame := range frames {
		windowed := h.window.Apply(frame)
		if windowed == nil {
			continue
		}

		lagMin := int(float64(h.sampleRate) / h.maxF0)
		lagMax := int(float64(h.sampleRate) / h.minF0)
		if lagMax > len(windowed)-1 {
			lagMax = len(windowed) - 1
		}
		if lagMin >= lagMax {
			continue
		}

		corr := autocorrelateLags(windowed, lagMax)
		if corr[0] < 1e-12 {
			continue
		}

		peak := corr[lagMin]
		for lag := lagMin + 1; lag < lagMax; lag++ {
			if corr[lag] > peak {
				peak = corr[lag]
			}
		}

		r := stats.Clip(peak/(corr[0]+1e-12), 0.0, hnrRatioCeiling)
		hnrs = append(hnrs, 10.0*math.Log10(r/(1.0-r+1e-12)))
	}

	if len(hnrs) == 0 {
		return 0.0
	}
	return stats.Mean(hnrs)
}
