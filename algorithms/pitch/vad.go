package pitch

import (
	"github.com/crewsight/vocalis/algorithms/spectral"
	"github.com/crewsight/vocalis/algorithms/stats"
)

// VAD is an energy/zero-crossing voice-activity detector, intentionally
// simpler and independent from the autocorrelation voicing decision.
// Thresholds are calibrated from the leading portion of the recording,
// which is assumed to hold the noise floor: a frame is voiced when its
// energy rises well above the floor while its zero-crossing rate stays
// below the noisy range.
type VAD struct {
	sampleRate     int
	hop            int
	calibrationSec float64
	energyFactor   float64
	zcrFactor      float64
	zcrOffset      float64
}

// NewVAD creates a detector calibrated on the first calibrationSec
// seconds of the recording
func NewVAD(sampleRate, hop int, calibrationSec float64) *VAD {
	return &VAD{
		sampleRate:     sampleRate,
		hop:            hop,
		calibrationSec: calibrationSec,
		energyFactor:   5.0,
		zcrFactor:      2.0,
		zcrOffset:      0.05,
	}
}

// Mask classifies each raw frame as voiced or not
func (v *VAD) Mask(frames [][]float64) []bool {
	numFrames := len(frames)
	mask := make([]bool, numFrames)
	if numFrames == 0 {
		return mask
	}

	energy := make([]float64, numFrames)
	zcr := make([]float64, numFrames)
	for t, frame := range frames {
		energy[t] = stats.MeanSquare(frame)
		zcr[t] = spectral.ZeroCrossingRate(frame)
	}

	calibFrames := int(v.calibrationSec * float64(v.sampleRate) / float64(v.hop))
	if calibFrames < 1 {
		calibFrames = 1
	}
	if calibFrames > numFrames {
		calibFrames = numFrames
	}

	energyThreshold := v.energyFactor*stats.Mean(energy[:calibFrames]) + 1e-12
	zcrThreshold := v.zcrFactor*stats.Mean(zcr[:calibFrames]) + v.zcrOffset

	for t := range numFrames {
		mask[t] = energy[t] > energyThreshold && zcr[t] < zcrThreshold
	}

	return mask
}
