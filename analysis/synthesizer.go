package analysis

import (
	"math"

	"github.com/crewsight/vocalis/algorithms/stats"
)

// Synthesize maps a merged feature set and a speaker role to an
// indicator record. The mapping is stateless and deterministic:
// identical inputs always yield identical records. Every numeric
// constant below is scoring calibration and part of the output
// contract.
func Synthesize(f *FeatureSet, role Role) *IndicatorRecord {
	f0Center := role.F0Baseline()

	fatigue := []contribution{
		{"vocal_energy", (1 - stats.Clip(f.Spectral.EnergyMean*500, 0, 1)) * 20},
		{"hnr_breathiness", (1 - stats.Sigmoid(f.HNR, 12, 4)) * 18},
		{"shimmer", stats.Clip(f.Perturbation.ShimmerDB/2.5, 0, 1) * 16},
		{"pitch_flatness", (1 - stats.Clip(f.F0.Range/150, 0, 1)) * 15},
		{"pause_length", stats.Clip(f.Prosody.PauseMeanDur/1.2, 0, 1) * 15},
		{"speech_rate", (1 - stats.Clip(f.Prosody.SpeechRatio/0.65, 0, 1)) * 8},
		{"voiced_ratio", (1 - stats.Clip(f.F0.VoicedRatio/0.55, 0, 1)) * 8},
	}

	stress := []contribution{
		{"f0_elevation", stats.Sigmoid(f.F0.Mean, f0Center+30, 25) * 22},
		{"f0_variability", stats.Clip(f.F0.Std/45, 0, 1) * 15},
		{"jitter", stats.Clip(f.Perturbation.JitterLocal/0.015, 0, 1) * 16},
		{"spectral_flux", stats.Clip(f.Spectral.FluxMean*4000, 0, 1) * 13},
		{"energy_var", stats.Clip(f.Spectral.EnergyStd*600, 0, 1) * 12},
		{"centroid_hi", stats.Sigmoid(f.Spectral.CentroidMean, 2200, 500) * 12},
		{"lpc_flux", stats.Clip(f.LPC.Flux*60, 0, 1) * 10},
	}

	firstDeltaMean := 0.0
	if len(f.Cepstral.DeltaMean) > 0 {
		firstDeltaMean = f.Cepstral.DeltaMean[0]
	}

	cognitive := []contribution{
		{"hesitation_rate", stats.Clip(f.Prosody.PauseRate*2.5, 0, 1) * 22},
		{"rhythm_irregular", stats.Clip(f.Prosody.VoicedRunStd/0.45, 0, 1) * 18},
		{"short_voiced_runs", (1 - stats.Clip(f.Prosody.VoicedRunMean/0.7, 0, 1)) * 15},
		{"lpc_error", stats.Clip(f.LPC.ErrorStd*1200, 0, 1) * 14},
		{"spectral_noise", stats.Clip(f.Spectral.FlatnessMean*6, 0, 1) * 14},
		{"jitter_rap", stats.Clip(f.Perturbation.JitterRAP/0.012, 0, 1) * 10},
		{"mfcc_delta", stats.Clip(math.Abs(firstDeltaMean)/4, 0, 1) * 7},
	}

	fatigueScore := stats.Clip(sumContributions(fatigue), 0, 100)
	stressScore := stats.Clip(sumContributions(stress), 0, 100)
	cognitiveScore := stats.Clip(sumContributions(cognitive), 0, 100)

	// Clarity models readback intelligibility, not crew state, and is
	// reported separately from the composite
	clarityScore := stats.Clip(
		stats.Sigmoid(f.HNR, 10, 5)*35+
			(1-stats.Clip(f.Perturbation.JitterLocal/0.02, 0, 1))*25+
			stats.Clip(f.Prosody.SpeechRatio/0.6, 0, 1)*20+
			(1-stats.Clip(f.Spectral.FlatnessMean*5, 0, 1))*20,
		0, 100)

	confidence := stats.Clip(f.F0.VoicedRatio*f.Prosody.TotalDur/6, 0.35, 1.0)
	composite := 0.35*fatigueScore + 0.30*stressScore + 0.35*cognitiveScore

	return &IndicatorRecord{
		Fatigue:            fatigueScore,
		Stress:             stressScore,
		Cognitive:          cognitiveScore,
		Clarity:            clarityScore,
		Composite:          composite,
		RiskLevel:          ClassifyRisk(composite),
		Confidence:         confidence * 100,
		FatigueBreakdown:   normalizeBreakdown(fatigue),
		StressBreakdown:    normalizeBreakdown(stress),
		CognitiveBreakdown: normalizeBreakdown(cognitive),
		Diagnostics: Diagnostics{
			F0Mean:       f.F0.Mean,
			F0Std:        f.F0.Std,
			F0Slope:      f.F0.Slope,
			HNR:          f.HNR,
			Jitter:       f.Perturbation.JitterLocal * 100,
			ShimmerDB:    f.Perturbation.ShimmerDB,
			SpeechRatio:  f.Prosody.SpeechRatio * 100,
			PauseRate:    f.Prosody.PauseRate,
			VoicedRatio:  f.F0.VoicedRatio * 100,
			Centroid:     f.Spectral.CentroidMean,
			LPCFlux:      f.LPC.Flux,
			PauseMeanDur: f.Prosody.PauseMeanDur,
		},
	}
}

// contribution is one named scoring term. Terms are kept as an ordered
// slice so the category sum always accumulates in the same order;
// summing from a map would let iteration order perturb the last bits of
// the result.
type contribution struct {
	name  string
	value float64
}

func sumContributions(contributions []contribution) float64 {
	sum := 0.0
	for _, c := range contributions {
		sum += c.value
	}
	return sum
}

// normalizeBreakdown rescales raw contributions to a 0-100 display
// range (a term at its full weight share maps well above 100 and is
// capped)
func normalizeBreakdown(contributions []contribution) map[string]float64 {
	normalized := make(map[string]float64, len(contributions))
	for _, c := range contributions {
		normalized[c.name] = math.Min(c.value*5, 100)
	}
	return normalized
}
