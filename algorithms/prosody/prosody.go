package prosody

import (
	"github.com/crewsight/vocalis/algorithms/stats"
)

// Analyzer derives pause and rhythm statistics from a voice-activity
// mask. Pauses are contiguous unvoiced runs located by edge detection
// on the inverted mask; a pause is only counted once speech has
// actually started, so leading silence never registers as a pause.
type Analyzer struct {
	sampleRate int
	hop        int
}

// Features contains recording-level prosody statistics
type Features struct {
	SpeechRatio   float64 `json:"speech_ratio"`    // Voiced-frame fraction
	PauseCount    int     `json:"pause_count"`     // Completed pauses after speech onset
	PauseRate     float64 `json:"pause_rate"`      // Pauses per second of recording
	PauseMeanDur  float64 `json:"pause_mean_dur"`  // Mean pause duration (s)
	PauseMaxDur   float64 `json:"pause_max_dur"`   // Longest pause (s)
	PauseTotalDur float64 `json:"pause_total_dur"` // Total paused time (s)
	VoicedRunMean float64 `json:"voiced_run_mean"` // Mean voiced-run length (s)
	VoicedRunStd  float64 `json:"voiced_run_std"`  // Population std of run lengths (s)
	TotalDur      float64 `json:"total_dur"`       // Recording duration covered by frames (s)
}

// NewAnalyzer creates a prosody analyzer for the given frame hop
func NewAnalyzer(sampleRate, hop int) *Analyzer {
	return &Analyzer{
		sampleRate: sampleRate,
		hop:        hop,
	}
}

// Analyze computes prosody statistics from a per-frame voicing mask
func (a *Analyzer) Analyze(mask []bool) *Features {
	total := len(mask)
	frameDur := float64(a.hop) / float64(a.sampleRate)
	totalDur := float64(total) * frameDur

	voicedCount := 0
	for _, v := range mask {
		if v {
			voicedCount++
		}
	}

	// Pause edges on the inverted mask: a rising edge opens a pause, a
	// falling edge closes it. A falling edge before any rising edge
	// belongs to leading silence and is discarded.
	var starts, ends []int
	for i := 1; i < total; i++ {
		unvoicedPrev := !mask[i-1]
		unvoicedCur := !mask[i]
		if unvoicedCur && !unvoicedPrev {
			starts = append(starts, i-1)
		} else if !unvoicedCur && unvoicedPrev {
			ends = append(ends, i-1)
		}
	}

	var pauseDurs []float64
	if len(starts) > 0 && len(ends) > 0 {
		if ends[0] < starts[0] {
			ends = ends[1:]
		}
		n := len(starts)
		if len(ends) < n {
			n = len(ends)
		}
		for i := range n {
			pauseDurs = append(pauseDurs, float64(ends[i]-starts[i])*frameDur)
		}
	}

	// Voiced run lengths in frames
	var runs []float64
	inRun := false
	runStart := 0
	for i, v := range mask {
		if v && !inRun {
			inRun = true
			runStart = i
		} else if !v && inRun {
			runs = append(runs, float64(i-runStart))
			inRun = false
		}
	}
	if inRun {
		runs = append(runs, float64(total-runStart))
	}

	f := &Features{
		SpeechRatio: float64(voicedCount) / (float64(total) + 1e-6),
		PauseCount:  len(pauseDurs),
		PauseRate:   float64(len(pauseDurs)) / (totalDur + 1e-6),
		TotalDur:    totalDur,
	}
	if len(pauseDurs) > 0 {
		f.PauseMeanDur = stats.Mean(pauseDurs)
		f.PauseMaxDur = stats.Max(pauseDurs)
		for _, d := range pauseDurs {
			f.PauseTotalDur += d
		}
	}
	if len(runs) > 0 {
		f.VoicedRunMean = stats.Mean(runs) * frameDur
		f.VoicedRunStd = stats.StdDev(runs) * frameDur
	}

	return f
}
