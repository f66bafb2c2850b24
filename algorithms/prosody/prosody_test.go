package prosody

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSampleRate = 22050
	testHop        = 220
	frameDur       = float64(testHop) / float64(testSampleRate)
)

// buildMask concatenates alternating runs, starting with the given
// voicing state
func buildMask(startVoiced bool, runLengths ...int) []bool {
	var mask []bool
	voiced := startVoiced
	for _, n := range runLengths {
		for range n {
			mask = append(mask, voiced)
		}
		voiced = !voiced
	}
	return mask
}

func TestAnalyzeSpeechPauseSpeech(t *testing.T) {
	a := NewAnalyzer(testSampleRate, testHop)

	// Lead-in silence, speech, one pause, speech
	mask := buildMask(false, 10, 50, 50, 50)
	f := a.Analyze(mask)
	require.NotNil(t, f)

	assert.Equal(t, 1, f.PauseCount)
	assert.InDelta(t, 50*frameDur, f.PauseMeanDur, frameDur)
	assert.InDelta(t, 50*frameDur, f.PauseMaxDur, frameDur)
	assert.InDelta(t, 100.0/160.0, f.SpeechRatio, 1e-4)
	assert.InDelta(t, 160*frameDur, f.TotalDur, 1e-9)

	// Two equal voiced runs
	assert.InDelta(t, 50*frameDur, f.VoicedRunMean, 1e-9)
	assert.InDelta(t, 0.0, f.VoicedRunStd, 1e-9)
}

func TestAnalyzeLeadingSilenceIsNotAPause(t *testing.T) {
	a := NewAnalyzer(testSampleRate, testHop)

	// Silence then continuous speech: nothing to hesitate over
	f := a.Analyze(buildMask(false, 40, 100))
	assert.Equal(t, 0, f.PauseCount)
	assert.Equal(t, 0.0, f.PauseMeanDur)
}

func TestAnalyzeTrailingPauseIsOpen(t *testing.T) {
	a := NewAnalyzer(testSampleRate, testHop)

	// A pause that never closes before the recording ends is not
	// counted as a completed pause
	f := a.Analyze(buildMask(true, 50, 30))
	assert.Equal(t, 0, f.PauseCount)
}

func TestAnalyzeMultiplePauses(t *testing.T) {
	a := NewAnalyzer(testSampleRate, testHop)

	mask := buildMask(true, 40, 20, 40, 60, 40)
	f := a.Analyze(mask)

	assert.Equal(t, 2, f.PauseCount)
	assert.InDelta(t, 40*frameDur, f.PauseMeanDur, frameDur)
	assert.InDelta(t, 60*frameDur, f.PauseMaxDur, frameDur)
	assert.InDelta(t, float64(f.PauseCount)/f.TotalDur, f.PauseRate, 1e-3)
}

func TestAnalyzeAllUnvoiced(t *testing.T) {
	a := NewAnalyzer(testSampleRate, testHop)

	f := a.Analyze(make([]bool, 120))
	assert.Equal(t, 0, f.PauseCount)
	assert.InDelta(t, 0.0, f.SpeechRatio, 1e-9)
	assert.Equal(t, 0.0, f.VoicedRunMean)
}

func TestAnalyzeEmptyMask(t *testing.T) {
	a := NewAnalyzer(testSampleRate, testHop)

	f := a.Analyze(nil)
	require.NotNil(t, f)
	assert.Equal(t, 0.0, f.TotalDur)
	assert.Equal(t, 0, f.PauseCount)
}
