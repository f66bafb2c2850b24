package conditioning

// Framer slices a signal into fixed-length overlapping frames.
// Frame length and hop are fixed at construction so every stage of a
// pipeline run sees the same frame geometry.
type Framer struct {
	frameLen int
	hop      int
}

// NewFramer creates a framer with the given frame length and hop in samples
func NewFramer(frameLen, hop int) *Framer {
	return &Framer{
		frameLen: frameLen,
		hop:      hop,
	}
}

// NumFrames returns the number of frames produced for a signal of n samples.
// A signal shorter than one frame still yields one (zero-filled) frame.
func (f *Framer) NumFrames(n int) int {
	numFrames := 1 + (n-f.frameLen)/f.hop
	if numFrames <= 0 {
		return 1
	}
	return numFrames
}

// Frames returns the frame matrix for the signal. Each row is a copy, so
// callers may window rows in place without touching the source buffer.
// A signal shorter than one frame yields a single silent frame rather
// than an error.
func (f *Framer) Frames(signal []float64) [][]float64 {
	if len(signal) < f.frameLen {
		return [][]float64{make([]float64, f.frameLen)}
	}

	numFrames := 1 + (len(signal)-f.frameLen)/f.hop
	frames := make([][]float64, numFrames)
	for i := range numFrames {
		start := i * f.hop
		frame := make([]float64, f.frameLen)
		copy(frame, signal[start:start+f.frameLen])
		frames[i] = frame
	}

	return frames
}

// GetFrameLength returns the frame length in samples
func (f *Framer) GetFrameLength() int {
	return f.frameLen
}

// GetHop returns the hop size in samples
func (f *Framer) GetHop() int {
	return f.hop
}
