package analysis

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/crewsight/vocalis/algorithms/conditioning"
	"github.com/crewsight/vocalis/algorithms/pitch"
	"github.com/crewsight/vocalis/algorithms/prosody"
	"github.com/crewsight/vocalis/algorithms/spectral"
	"github.com/crewsight/vocalis/algorithms/speech"
	"github.com/crewsight/vocalis/algorithms/windowing"
	"github.com/crewsight/vocalis/logging"
)

// Engine runs the full acoustic analysis pipeline: conditioning,
// framed feature extraction, recording-level aggregation, and indicator
// synthesis. An Engine holds no per-call state and is safe for
// concurrent use; the memoized mel filter bank is its only shared
// artifact and is guarded internally.
type Engine struct {
	config Config
	logger logging.Logger

	framer      *conditioning.Framer
	preEmphasis *conditioning.PreEmphasis
	window      *windowing.Hamming
	cepstral    *spectral.Cepstral
	shape       *spectral.ShapeAnalyzer
	lpc         *speech.LPCAnalyzer
	f0          *pitch.F0Estimator
	hnr         *pitch.HNRAnalyzer
	vad         *pitch.VAD
	prosody     *prosody.Analyzer
}

// NewEngine creates an analysis engine with the fixed operating
// parameters
func NewEngine() (*Engine, error) {
	config := DefaultConfig()
	frameLen := config.FrameLength()
	hop := config.Hop()

	preEmphasis, err := conditioning.NewPreEmphasis(config.PreEmphasis)
	if err != nil {
		return nil, err
	}

	cache := spectral.NewFilterBankCache(config.MelLowFreq, config.MelHighFreq)
	cepstral, err := spectral.NewCepstral(config.SampleRate, spectral.CepstralParams{
		NumCoefficients: config.NumCepstra,
		NumBands:        config.MelBands,
		FFTSize:         config.FFTSize,
	}, cache)
	if err != nil {
		return nil, err
	}

	lpc, err := speech.NewLPCAnalyzer(config.LPCOrder, frameLen)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:      config,
		logger:      logging.WithFields(logging.Fields{"component": "analysis"}),
		framer:      conditioning.NewFramer(frameLen, hop),
		preEmphasis: preEmphasis,
		window:      windowing.NewHamming(frameLen),
		cepstral:    cepstral,
		shape:       spectral.NewShapeAnalyzer(config.SampleRate, config.FFTSize),
		lpc:         lpc,
		f0:          pitch.NewF0Estimator(config.SampleRate, frameLen, config.PitchMinFreq, config.PitchMaxFreq),
		hnr:         pitch.NewHNRAnalyzer(config.SampleRate, frameLen, config.PitchMinFreq, config.PitchMaxFreq),
		vad:         pitch.NewVAD(config.SampleRate, hop, config.VADCalibrationS),
		prosody:     prosody.NewAnalyzer(config.SampleRate, hop),
	}, nil
}

// Config returns the engine's operating parameters
func (e *Engine) Config() Config {
	return e.config
}

// Analyze runs the pipeline over a mono sample buffer at the operating
// sample rate and returns the indicator record. The buffer is read
// only; the analysis owns every intermediate artifact. Structurally
// invalid input (empty buffer, non-finite samples) returns
// ErrInvalidInput; degenerate audio analyzes normally through the
// documented fallbacks.
func (e *Engine) Analyze(samples []float64, role Role) (*IndicatorRecord, error) {
	if len(samples) == 0 {
		return nil, invalidInputf("empty sample buffer")
	}
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, invalidInputf("non-finite sample at index %d", i)
		}
	}

	normalized := conditioning.PeakNormalize(samples)

	// One raw frame matrix feeds every stage except the cepstral path,
	// which frames the pre-emphasized signal separately. No stage
	// mutates a shared row: windowing always copies.
	rawFrames := e.framer.Frames(normalized)

	featureSet := &FeatureSet{}
	var g errgroup.Group

	g.Go(func() error {
		emphasized := e.preEmphasis.ProcessBuffer(normalized)
		windowed := e.windowFrames(e.framer.Frames(emphasized))
		coeffs := e.cepstral.ComputeFrames(windowed)
		deltas := spectral.ComputeDeltas(coeffs, e.config.DeltaWidth)
		deltaDeltas := spectral.ComputeDeltas(deltas, e.config.DeltaWidth)
		featureSet.Cepstral = aggregateCepstral(coeffs, deltas, deltaDeltas, e.config.NumCepstra)
		return nil
	})

	g.Go(func() error {
		featureSet.LPC = *e.lpc.AnalyzeFrames(rawFrames)
		return nil
	})

	g.Go(func() error {
		track := e.f0.Track(rawFrames)
		featureSet.F0 = *pitch.ComputeTrackStats(track)
		featureSet.Perturbation = *pitch.ComputePerturbation(track, rawFrames)
		featureSet.HNR = e.hnr.AnalyzeFrames(rawFrames)
		return nil
	})

	g.Go(func() error {
		mask := e.vad.Mask(rawFrames)
		featureSet.Prosody = *e.prosody.Analyze(mask)
		featureSet.Spectral = *e.shape.Compute(rawFrames, e.windowFrames(rawFrames))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	record := Synthesize(featureSet, role)

	e.logger.Debug("analysis complete", logging.Fields{
		"frames":     len(rawFrames),
		"duration_s": featureSet.Prosody.TotalDur,
		"risk":       record.RiskLevel,
	})

	return record, nil
}

// windowFrames returns a windowed copy of the frame matrix
func (e *Engine) windowFrames(frames [][]float64) [][]float64 {
	windowed := make([][]float64, len(frames))
	for t, frame := range frames {
		windowed[t] = e.window.Apply(frame)
	}
	return windowed
}
