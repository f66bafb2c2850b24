package analysis

// Diagnostics echoes the raw features most useful when reviewing a
// score, in display units (percentages where noted)
type Diagnostics struct {
	F0Mean       float64 `json:"f0_mean"`      // Hz
	F0Std        float64 `json:"f0_std"`       // Hz
	F0Slope      float64 `json:"f0_slope"`     // Hz per voiced frame
	HNR          float64 `json:"hnr"`          // dB
	Jitter       float64 `json:"jitter"`       // percent
	ShimmerDB    float64 `json:"shimmer_db"`   // dB
	SpeechRatio  float64 `json:"speech_ratio"` // percent
	PauseRate    float64 `json:"pause_rate"`   // pauses per second
	VoicedRatio  float64 `json:"voiced_ratio"` // percent
	Centroid     float64 `json:"centroid"`     // Hz
	LPCFlux      float64 `json:"lpc_flux"`
	PauseMeanDur float64 `json:"pause_mean_dur"` // seconds
}

// IndicatorRecord is the final output of one analysis: bounded
// indicator scores, the discrete risk classification, a confidence
// estimate, per-category contribution breakdowns, and diagnostic raw
// features. Records are created once per analysis call and never
// mutated afterward.
type IndicatorRecord struct {
	Fatigue   float64 `json:"fatigue"`   // [0,100]
	Stress    float64 `json:"stress"`    // [0,100]
	Cognitive float64 `json:"cognitive"` // [0,100]
	Clarity   float64 `json:"clarity"`   // [0,100]; excluded from the composite

	Composite  float64   `json:"composite"` // [0,100]
	RiskLevel  RiskLevel `json:"risk_level"`
	Confidence float64   `json:"confidence"` // [35,100]

	// Normalized contribution of each scoring term, per category
	FatigueBreakdown   map[string]float64 `json:"fatigue_breakdown"`
	StressBreakdown    map[string]float64 `json:"stress_breakdown"`
	CognitiveBreakdown map[string]float64 `json:"cognitive_breakdown"`

	Diagnostics Diagnostics `json:"diagnostics"`
}
