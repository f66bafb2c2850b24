package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goodVoice models a rested, clear speaker
func goodVoice() *FeatureSet {
	f := &FeatureSet{}
	f.HNR = 20.0
	f.F0.Mean = 160.0
	f.F0.Std = 12.0
	f.F0.Range = 120.0
	f.F0.VoicedRatio = 0.6
	f.Perturbation.JitterLocal = 0.002
	f.Perturbation.JitterRAP = 0.001
	f.Perturbation.ShimmerDB = 0.2
	f.Spectral.EnergyMean = 0.01
	f.Spectral.FlatnessMean = 0.01
	f.Prosody.SpeechRatio = 0.6
	f.Prosody.PauseRate = 0.1
	f.Prosody.PauseMeanDur = 0.2
	f.Prosody.VoicedRunMean = 0.8
	f.Prosody.TotalDur = 10.0
	return f
}

func TestSynthesizeZeroFeatures(t *testing.T) {
	record := Synthesize(&FeatureSet{}, RoleDefault)
	require.NotNil(t, record)

	// Absent voice reads as fatigued but carries floor confidence
	assert.InDelta(t, 68.15, record.Fatigue, 0.05)
	assert.Less(t, record.Stress, 1.0)
	assert.InDelta(t, 15.0, record.Cognitive, 0.05)
	assert.InDelta(t, 35.0, record.Confidence, 1e-9)

	expected := 0.35*record.Fatigue + 0.30*record.Stress + 0.35*record.Cognitive
	assert.InDelta(t, expected, record.Composite, 1e-9)
}

func TestSynthesizeGoodVoice(t *testing.T) {
	record := Synthesize(goodVoice(), RoleDefault)

	assert.Less(t, record.Composite, 30.0)
	assert.Equal(t, RiskNominal, record.RiskLevel)
	assert.Greater(t, record.Clarity, 70.0)
	assert.Equal(t, 100.0, record.Confidence)
}

func TestSynthesizeDegradedVoice(t *testing.T) {
	f := goodVoice()
	f.HNR = 4.0
	f.Perturbation.JitterLocal = 0.02
	f.Perturbation.ShimmerDB = 3.0
	f.F0.Range = 10.0
	f.Prosody.PauseMeanDur = 1.5
	f.Prosody.PauseRate = 0.8
	f.Prosody.SpeechRatio = 0.25
	f.Prosody.VoicedRunMean = 0.2
	f.F0.VoicedRatio = 0.2

	degraded := Synthesize(f, RoleDefault)
	baseline := Synthesize(goodVoice(), RoleDefault)

	assert.Greater(t, degraded.Fatigue, baseline.Fatigue)
	assert.Greater(t, degraded.Cognitive, baseline.Cognitive)
	assert.Less(t, degraded.Clarity, baseline.Clarity)
	assert.Greater(t, degraded.Composite, 40.0)
	assert.NotEqual(t, RiskNominal, degraded.RiskLevel)
}

func TestSynthesizeDiagnosticsEcho(t *testing.T) {
	f := goodVoice()
	record := Synthesize(f, RoleDefault)

	d := record.Diagnostics
	assert.Equal(t, f.F0.Mean, d.F0Mean)
	assert.Equal(t, f.HNR, d.HNR)
	// Ratios are echoed as percentages
	assert.InDelta(t, 0.2, d.Jitter, 1e-9)
	assert.InDelta(t, 60.0, d.SpeechRatio, 1e-9)
	assert.InDelta(t, 60.0, d.VoicedRatio, 1e-9)
}

func TestSynthesizeBreakdownRanges(t *testing.T) {
	record := Synthesize(goodVoice(), RoleDefault)

	for _, breakdown := range []map[string]float64{
		record.FatigueBreakdown,
		record.StressBreakdown,
		record.CognitiveBreakdown,
	} {
		require.NotEmpty(t, breakdown)
		for name, v := range breakdown {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 100.0, name)
		}
	}

	assert.Len(t, record.FatigueBreakdown, 7)
	assert.Len(t, record.StressBreakdown, 7)
	assert.Len(t, record.CognitiveBreakdown, 7)
}

func TestSynthesizeDeterministic(t *testing.T) {
	first := Synthesize(goodVoice(), RoleMale)
	second := Synthesize(goodVoice(), RoleMale)
	assert.Equal(t, first, second)
}

// Category sums must accumulate in a fixed term order. Repeated runs
// catch an order-dependent accumulation that two runs often miss.
func TestSynthesizeRepeatedRunsBitIdentical(t *testing.T) {
	reference := Synthesize(goodVoice(), RoleMale)
	for i := 0; i < 50; i++ {
		record := Synthesize(goodVoice(), RoleMale)
		assert.Equal(t, reference.Fatigue, record.Fatigue)
		assert.Equal(t, reference.Stress, record.Stress)
		assert.Equal(t, reference.Cognitive, record.Cognitive)
		assert.Equal(t, reference.Composite, record.Composite)
		assert.Equal(t, reference, record)
	}
}

func TestClassifyRiskBreakpoints(t *testing.T) {
	assert.Equal(t, RiskNominal, ClassifyRisk(0))
	assert.Equal(t, RiskNominal, ClassifyRisk(29.9))
	assert.Equal(t, RiskMonitor, ClassifyRisk(30))
	assert.Equal(t, RiskMonitor, ClassifyRisk(49.9))
	assert.Equal(t, RiskCaution, ClassifyRisk(50))
	assert.Equal(t, RiskCaution, ClassifyRisk(69.9))
	assert.Equal(t, RiskAlert, ClassifyRisk(70))
	assert.Equal(t, RiskAlert, ClassifyRisk(100))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleMale, ParseRole("male"))
	assert.Equal(t, RoleMale, ParseRole("Captain (MALE)"))
	assert.Equal(t, RoleFemale, ParseRole("female"))
	assert.Equal(t, RoleFemale, ParseRole("First Officer (Female)"))
	assert.Equal(t, RoleDefault, ParseRole("controller"))
	assert.Equal(t, RoleDefault, ParseRole(""))
}

func TestRoleBaselines(t *testing.T) {
	assert.Equal(t, 165.0, RoleDefault.F0Baseline())
	assert.Equal(t, 140.0, RoleMale.F0Baseline())
	assert.Equal(t, 200.0, RoleFemale.F0Baseline())

	assert.Equal(t, "male", RoleMale.String())
	assert.Equal(t, "default", RoleDefault.String())
}
