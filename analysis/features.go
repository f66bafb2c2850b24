package analysis

import (
	"github.com/crewsight/vocalis/algorithms/pitch"
	"github.com/crewsight/vocalis/algorithms/prosody"
	"github.com/crewsight/vocalis/algorithms/spectral"
	"github.com/crewsight/vocalis/algorithms/speech"
	"github.com/crewsight/vocalis/algorithms/stats"
)

// CepstralFeatures contains the recording-level cepstral aggregates:
// per-coefficient mean and population std, plus mean first and second
// differences. Each slice has one entry per cepstral coefficient.
type CepstralFeatures struct {
	Mean           []float64 `json:"mean"`
	Std            []float64 `json:"std"`
	DeltaMean      []float64 `json:"delta_mean"`
	DeltaDeltaMean []float64 `json:"delta_delta_mean"`
}

// FeatureSet is the merged, recording-level feature record consumed by
// the indicator synthesizer. Each extraction stage owns exactly one
// field; the merge happens once, at the aggregation boundary, and the
// set is read-only afterward.
type FeatureSet struct {
	Cepstral     CepstralFeatures           `json:"cepstral"`
	LPC          speech.LPCFeatures         `json:"lpc"`
	F0           pitch.TrackStats           `json:"f0"`
	Perturbation pitch.PerturbationFeatures `json:"perturbation"`
	HNR          float64                    `json:"hnr"`
	Spectral     spectral.ShapeStats        `json:"spectral"`
	Prosody      prosody.Features           `json:"prosody"`
}

// aggregateCepstral reduces per-frame coefficient matrices to the
// recording-level cepstral record. All three matrices share the frame
// dimension of the pipeline's frame matrix.
func aggregateCepstral(coeffs, deltas, deltaDeltas [][]float64, numCoeffs int) CepstralFeatures {
	cf := CepstralFeatures{
		Mean:           make([]float64, numCoeffs),
		Std:            make([]float64, numCoeffs),
		DeltaMean:      make([]float64, numCoeffs),
		DeltaDeltaMean: make([]float64, numCoeffs),
	}

	column := make([]float64, len(coeffs))
	for i := range numCoeffs {
		for t := range coeffs {
			column[t] = coeffs[t][i]
		}
		cf.Mean[i] = stats.Mean(column)
		cf.Std[i] = stats.StdDev(column)

		for t := range deltas {
			column[t] = deltas[t][i]
		}
		cf.DeltaMean[i] = stats.Mean(column)

		for t := range deltaDeltas {
			column[t] = deltaDeltas[t][i]
		}
		cf.DeltaDeltaMean[i] = stats.Mean(column)
	}

	return cf
}
