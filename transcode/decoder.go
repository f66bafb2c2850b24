package transcode

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/crewsight/vocalis/logging"
)

// Recording is a decoded voice recording, already converted to the
// analysis operating format: mono float64 PCM at the target rate.
type Recording struct {
	PCM        []float64     `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
	Source     string        `json:"source"`
}

// Probe holds audio properties detected by ffprobe before decoding
type Probe struct {
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Codec      string  `json:"codec"`
	Duration   float64 `json:"duration"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	TargetSampleRate int           `json:"target_sample_rate"`
	MaxDuration      time.Duration `json:"max_duration"` // 0 means no limit
	FFmpegPath       string        `json:"ffmpeg_path"`
	FFprobePath      string        `json:"ffprobe_path"`
	Timeout          time.Duration `json:"timeout"`
}

// DefaultDecoderConfig returns the decoder configuration matching the
// analysis operating format
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		TargetSampleRate: 22050,
		MaxDuration:      0,
		FFmpegPath:       "ffmpeg",
		FFprobePath:      "ffprobe",
		Timeout:          30 * time.Second,
	}
}

// Decoder converts recordings of any container or codec into the
// analysis operating format by shelling out to FFmpeg. Multichannel
// input is downmixed to mono and resampled to the target rate.
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a decoder; a nil config uses the defaults
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.WithFields(logging.Fields{"component": "transcode"}),
	}
}

// DecodeFile decodes an audio file into a Recording
func (d *Decoder) DecodeFile(ctx context.Context, filename string) (*Recording, error) {
	probe, err := d.probeFile(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", filename, err)
	}

	d.logger.Debug("probed audio file", logging.Fields{
		"filename":    filename,
		"sample_rate": probe.SampleRate,
		"channels":    probe.Channels,
		"codec":       probe.Codec,
		"duration":    probe.Duration,
	})

	args := []string{"-v", "error", "-i", filename}
	args = append(args, d.outputArgs()...)

	return d.run(ctx, filename, args, d.config.Timeout)
}

// DecodeStream captures up to captureDuration of audio from a live
// stream URL and decodes it into a Recording
func (d *Decoder) DecodeStream(ctx context.Context, url string, captureDuration time.Duration) (*Recording, error) {
	if captureDuration <= 0 {
		return nil, fmt.Errorf("capture duration must be positive, got %s", captureDuration)
	}

	args := []string{
		"-v", "error",
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "2",
		"-i", url,
		"-t", fmt.Sprintf("%.3f", captureDuration.Seconds()),
	}
	args = append(args, d.outputArgs()...)

	// Allow room for connection setup on top of the capture itself
	timeout := captureDuration + 30*time.Second
	if d.config.Timeout > timeout {
		timeout = d.config.Timeout
	}

	return d.run(ctx, url, args, timeout)
}

// outputArgs returns the fixed FFmpeg output parameters for the
// operating format
func (d *Decoder) outputArgs() []string {
	args := []string{
		"-vn",
		"-map", "0:a:0?",
		"-f", "f64le",
		"-ac", "1",
		"-ar", strconv.Itoa(d.config.TargetSampleRate),
	}
	if d.config.MaxDuration > 0 {
		args = append(args, "-t", fmt.Sprintf("%.3f", d.config.MaxDuration.Seconds()))
	}
	return append(args, "pipe:1")
}

// run executes ffmpeg and converts its raw output into a Recording
func (d *Decoder) run(ctx context.Context, source string, args []string, timeout time.Duration) (*Recording, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, d.config.FFmpegPath, args...)

	d.logger.Debug("running ffmpeg", logging.Fields{
		"command": fmt.Sprintf("%s %s", d.config.FFmpegPath, strings.Join(args, " ")),
		"timeout": timeout.Seconds(),
	})

	start := time.Now()
	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffmpeg decode failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	samples := bytesToFloat64(output)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", source)
	}

	duration := time.Duration(len(samples)) * time.Second / time.Duration(d.config.TargetSampleRate)

	d.logger.Debug("decode completed", logging.Fields{
		"source":      source,
		"samples":     len(samples),
		"duration":    duration.Seconds(),
		"decode_time": time.Since(start).Seconds(),
	})

	return &Recording{
		PCM:        samples,
		SampleRate: d.config.TargetSampleRate,
		Duration:   duration,
		Source:     source,
	}, nil
}

// probeFile uses ffprobe to read audio stream properties
func (d *Decoder) probeFile(ctx context.Context, filename string) (*Probe, error) {
	probeCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "a:0",
		filename,
	}

	cmd := exec.CommandContext(probeCtx, d.config.FFprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbeOutput(output)
}

// parseProbeOutput extracts audio properties from ffprobe JSON
func parseProbeOutput(jsonData []byte) (*Probe, error) {
	var probe struct {
		Streams []struct {
			CodecType  string `json:"codec_type"`
			CodecName  string `json:"codec_name"`
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
			Duration   string `json:"duration"`
		} `json:"streams"`
	}

	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("no audio streams found")
	}

	stream := probe.Streams[0]
	if stream.CodecType != "audio" {
		return nil, fmt.Errorf("first stream is %s, not audio", stream.CodecType)
	}

	result := &Probe{
		Channels: stream.Channels,
		Codec:    stream.CodecName,
	}
	if stream.SampleRate != "" {
		if sr, err := strconv.Atoi(stream.SampleRate); err == nil {
			result.SampleRate = sr
		}
	}
	if stream.Duration != "" {
		if dur, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
			result.Duration = dur
		}
	}

	return result, nil
}

// bytesToFloat64 converts raw f64le bytes to samples; a trailing
// partial sample is dropped
func bytesToFloat64(data []byte) []float64 {
	samples := make([]float64, len(data)/8)
	for i := range samples {
		bits := binary.LittleEndian.Uint64(data[i*8:])
		samples[i] = math.Float64frombits(bits)
	}
	return samples
}
