package conditioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreEmphasisFirstSamplePassesThrough(t *testing.T) {
	pe := NewPreEmphasisDefault()
	input := []float64{0.5, 0.5, 0.5, 0.5}
	output := pe.ProcessBuffer(input)

	require.Len(t, output, 4)
	assert.Equal(t, 0.5, output[0])
	for n := 1; n < 4; n++ {
		assert.InDelta(t, 0.5*(1-0.97), output[n], 1e-12)
	}
}

func TestPreEmphasisEmptyBuffer(t *testing.T) {
	pe := NewPreEmphasisDefault()
	assert.Empty(t, pe.ProcessBuffer(nil))
}

func TestPreEmphasisCoefficientValidation(t *testing.T) {
	_, err := NewPreEmphasis(0.0)
	assert.Error(t, err)
	_, err = NewPreEmphasis(1.0)
	assert.Error(t, err)

	pe, err := NewPreEmphasis(0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pe.GetCoefficient())
}

func TestPeakNormalizeBounds(t *testing.T) {
	signal := []float64{0.1, -0.4, 0.2, 0.4}
	normalized := PeakNormalize(signal)

	require.Len(t, normalized, 4)
	for _, s := range normalized {
		assert.LessOrEqual(t, s, 1.0)
		assert.GreaterOrEqual(t, s, -1.0)
	}
	assert.InDelta(t, -1.0, normalized[1], 1e-8)

	// Source is untouched
	assert.Equal(t, []float64{0.1, -0.4, 0.2, 0.4}, signal)
}

func TestPeakNormalizeAllZero(t *testing.T) {
	normalized := PeakNormalize(make([]float64, 100))
	for _, s := range normalized {
		assert.Equal(t, 0.0, s)
	}
}

func TestFramerFrameCount(t *testing.T) {
	framer := NewFramer(551, 220)

	// One frame plus three hops
	n := 551 + 3*220
	assert.Equal(t, 4, framer.NumFrames(n))

	frames := framer.Frames(make([]float64, n))
	require.Len(t, frames, 4)
	for _, frame := range frames {
		assert.Len(t, frame, 551)
	}
}

func TestFramerShortSignal(t *testing.T) {
	framer := NewFramer(551, 220)
	frames := framer.Frames([]float64{1, 2, 3})

	require.Len(t, frames, 1)
	require.Len(t, frames[0], 551)
	for _, s := range frames[0] {
		assert.Equal(t, 0.0, s)
	}
}

func TestFramerRowsAreCopies(t *testing.T) {
	framer := NewFramer(4, 2)
	signal := []float64{1, 2, 3, 4, 5, 6}
	frames := framer.Frames(signal)

	require.Len(t, frames, 2)
	frames[0][0] = 99
	assert.Equal(t, 1.0, signal[0])
	assert.Equal(t, []float64{3, 4, 5, 6}, frames[1])
}
