package spectral

// ComputeDeltas computes regression-style time derivatives of a
// per-frame feature matrix (frames x coefficients). The regression runs
// over a +/-width frame window with edge-replicated padding, with the
// standard denominator 2*sum(n^2).
func ComputeDeltas(features [][]float64, width int) [][]float64 {
	numFrames := len(features)
	if numFrames == 0 {
		return [][]float64{}
	}
	if width <= 0 {
		width = 2
	}
	numCoeffs := len(features[0])

	denom := 0.0
	for n := 1; n <= width; n++ {
		denom += float64(n * n)
	}
	denom *= 2.0

	// Edge-replicated frame index
	at := func(t int) []float64 {
		if t < 0 {
			return features[0]
		}
		if t >= numFrames {
			return features[numFrames-1]
		}
		return features[t]
	}

	deltas := make([][]float64, numFrames)
	for t := range numFrames {
		deltas[t] = make([]float64, numCoeffs)
		for n := 1; n <= width; n++ {
			ahead := at(t + n)
			behind := at(t - n)
			for i := range numCoeffs {
				deltas[t][i] += float64(n) * (ahead[i] - behind[i])
			}
		}
		for i := range numCoeffs {
			deltas[t][i] /= denom
		}
	}

	return deltas
}
