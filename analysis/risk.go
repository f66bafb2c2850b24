package analysis

// RiskLevel is the discrete four-bucket classification of a score
type RiskLevel string

const (
	RiskNominal RiskLevel = "NOMINAL"
	RiskMonitor RiskLevel = "MONITOR"
	RiskCaution RiskLevel = "CAUTION"
	RiskAlert   RiskLevel = "ALERT"
)

// ClassifyRisk buckets a score in [0,100] at the 30/50/70 breakpoints.
// The same classifier labels the composite and, for display, any
// individual sub-score.
func ClassifyRisk(score float64) RiskLevel {
	switch {
	case score < 30:
		return RiskNominal
	case score < 50:
		return RiskMonitor
	case score < 70:
		return RiskCaution
	default:
		return RiskAlert
	}
}
