package analysis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tone(freq, amplitude float64, seconds float64) []float64 {
	n := int(seconds * 22050)
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/22050)
	}
	return signal
}

func noise(seconds float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	signal := make([]float64, int(seconds*22050))
	for i := range signal {
		signal[i] = rng.Float64()*2 - 1
	}
	return signal
}

func TestEngineConfig(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	config := engine.Config()
	assert.Equal(t, 22050, config.SampleRate)
	assert.Equal(t, 551, config.FrameLength())
	assert.Equal(t, 220, config.Hop())
}

func TestAnalyzeSteadyTone(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	record, err := engine.Analyze(tone(200, 0.8, 3.0), RoleDefault)
	require.NoError(t, err)

	d := record.Diagnostics
	assert.InDelta(t, 200.0, d.F0Mean, 10.0)
	assert.Greater(t, d.VoicedRatio, 90.0)
	assert.Less(t, d.Jitter, 0.5)
	assert.Greater(t, d.HNR, 20.0)

	assert.Equal(t, RiskNominal, record.RiskLevel)
}

func TestAnalyzeSilence(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	record, err := engine.Analyze(make([]float64, 22050), RoleDefault)
	require.NoError(t, err)

	d := record.Diagnostics
	assert.Equal(t, 0.0, d.F0Mean)
	assert.Equal(t, 0.0, d.HNR)
	assert.Equal(t, 0.0, d.Jitter)
	assert.Equal(t, 0.0, d.VoicedRatio)

	// No voiced evidence pins confidence to its floor
	assert.InDelta(t, 35.0, record.Confidence, 1e-9)
	assert.InDelta(t, 34.0, record.Composite, 2.0)
	assert.Equal(t, RiskMonitor, record.RiskLevel)
}

func TestAnalyzePauseDetection(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	// Quiet lead-in for threshold calibration, then two phrases
	// separated by half a second of silence
	var signal []float64
	signal = append(signal, make([]float64, 6615)...)
	signal = append(signal, tone(200, 0.6, 1.0)...)
	signal = append(signal, make([]float64, 11025)...)
	signal = append(signal, tone(200, 0.6, 1.0)...)

	record, err := engine.Analyze(signal, RoleDefault)
	require.NoError(t, err)

	d := record.Diagnostics
	assert.Greater(t, d.PauseRate, 0.0)
	assert.InDelta(t, 0.5, d.PauseMeanDur, 0.1)
	assert.Greater(t, d.SpeechRatio, 40.0)
}

func TestAnalyzeNoiseBounds(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	record, err := engine.Analyze(noise(2.0, 42), RoleDefault)
	require.NoError(t, err)

	for name, score := range map[string]float64{
		"fatigue":   record.Fatigue,
		"stress":    record.Stress,
		"cognitive": record.Cognitive,
		"clarity":   record.Clarity,
		"composite": record.Composite,
	} {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 100.0, name)
	}

	assert.GreaterOrEqual(t, record.Confidence, 35.0)
	assert.LessOrEqual(t, record.Confidence, 100.0)

	expected := 0.35*record.Fatigue + 0.30*record.Stress + 0.35*record.Cognitive
	assert.InDelta(t, expected, record.Composite, 1e-9)
	assert.Equal(t, ClassifyRisk(record.Composite), record.RiskLevel)

	// White noise is aperiodic and spectrally flat: harmonicity
	// collapses, the noise term saturates, and the stress and
	// cognitive channels climb out of the nominal band
	assert.Less(t, record.Diagnostics.HNR, 5.0)
	assert.Greater(t, record.CognitiveBreakdown["spectral_noise"], 50.0)
	assert.Greater(t, record.Stress, 30.0)
	assert.Greater(t, record.Cognitive, 30.0)
	assert.GreaterOrEqual(t, record.Composite, 30.0)
	assert.NotEqual(t, RiskNominal, record.RiskLevel)
}

func TestAnalyzeDeterministic(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	signal := noise(1.5, 7)
	first, err := engine.Analyze(signal, RoleFemale)
	require.NoError(t, err)
	second, err := engine.Analyze(signal, RoleFemale)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeInvalidInput(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	_, err = engine.Analyze(nil, RoleDefault)
	assert.ErrorIs(t, err, ErrInvalidInput)

	withNaN := tone(200, 0.5, 0.5)
	withNaN[100] = math.NaN()
	_, err = engine.Analyze(withNaN, RoleDefault)
	assert.ErrorIs(t, err, ErrInvalidInput)

	withInf := tone(200, 0.5, 0.5)
	withInf[0] = math.Inf(1)
	_, err = engine.Analyze(withInf, RoleDefault)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyzeShortBuffer(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	// Shorter than one frame still analyzes through the single-frame
	// fallback
	record, err := engine.Analyze([]float64{0.1, -0.2, 0.3}, RoleDefault)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.GreaterOrEqual(t, record.Composite, 0.0)
}

func TestAnalyzeRoleShiftsStress(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	signal := tone(200, 0.8, 2.0)

	asMale, err := engine.Analyze(signal, RoleMale)
	require.NoError(t, err)
	asFemale, err := engine.Analyze(signal, RoleFemale)
	require.NoError(t, err)

	// 200 Hz reads as elevated for a male baseline and ordinary for a
	// female one
	assert.Greater(t, asMale.Stress, asFemale.Stress)
}
