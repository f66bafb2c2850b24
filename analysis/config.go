package analysis

// Config holds the engine's fixed operating parameters. The values are
// part of the scoring calibration and are not end-user tunable; the
// struct exists so every constant is named and inspectable.
type Config struct {
	SampleRate int `json:"sample_rate"` // Operating rate (Hz); input must already be resampled
	FrameMs    int `json:"frame_ms"`    // Analysis frame length (ms)
	HopMs      int `json:"hop_ms"`      // Frame hop (ms)

	FFTSize         int     `json:"fft_size"`          // Power spectrum transform size
	MelBands        int     `json:"mel_bands"`         // Triangular mel filter count
	NumCepstra      int     `json:"num_cepstra"`       // Cepstral coefficients per frame
	DeltaWidth      int     `json:"delta_width"`       // Regression half-window for delta features
	LPCOrder        int     `json:"lpc_order"`         // Linear prediction order
	PreEmphasis     float64 `json:"pre_emphasis"`      // Pre-emphasis coefficient
	MelLowFreq      float64 `json:"mel_low_freq"`      // Filter bank lower edge (Hz)
	MelHighFreq     float64 `json:"mel_high_freq"`     // Filter bank upper edge (Hz)
	PitchMinFreq    float64 `json:"pitch_min_freq"`    // Pitch search floor (Hz)
	PitchMaxFreq    float64 `json:"pitch_max_freq"`    // Pitch search ceiling (Hz)
	VoicingRatio    float64 `json:"voicing_ratio"`     // Autocorrelation voicing acceptance (fixed)
	VADCalibrationS float64 `json:"vad_calibration_s"` // Leading window for VAD thresholds (s)
}

// DefaultConfig returns the engine's operating parameters
func DefaultConfig() Config {
	return Config{
		SampleRate:      22050,
		FrameMs:         25,
		HopMs:           10,
		FFTSize:         512,
		MelBands:        40,
		NumCepstra:      13,
		DeltaWidth:      2,
		LPCOrder:        16,
		PreEmphasis:     0.97,
		MelLowFreq:      80.0,
		MelHighFreq:     8000.0,
		PitchMinFreq:    60.0,
		PitchMaxFreq:    500.0,
		VoicingRatio:    0.3,
		VADCalibrationS: 0.1,
	}
}

// FrameLength returns the frame length in samples
func (c Config) FrameLength() int {
	return c.SampleRate * c.FrameMs / 1000
}

// Hop returns the frame hop in samples
func (c Config) Hop() int {
	return c.SampleRate * c.HopMs / 1000
}
