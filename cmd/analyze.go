package cmd

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crewsight/vocalis/analysis"
	"github.com/crewsight/vocalis/logging"
	"github.com/crewsight/vocalis/transcode"
)

var (
	azRole     string
	azReport   bool
	azRaw      bool
	azDuration time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|url]",
	Short: "Analyze a voice recording and emit indicator scores",
	Long: `Analyze a voice recording and emit the indicator record.

Audio files are decoded with ffmpeg and converted to the operating
format (mono, 22050 Hz). A http(s) URL is treated as a live stream and
captured for --duration before analysis. With --raw, or when reading
from stdin (no file argument or "-"), input is taken as raw mono
float32 little-endian PCM at 22050 Hz.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&azRole, "role", "r", "default",
		"speaker role for pitch baselines (default, male, female)")
	analyzeCmd.Flags().BoolVar(&azReport, "report", false,
		"print a plain-text crew report instead of structured output")
	analyzeCmd.Flags().BoolVar(&azRaw, "raw", false,
		"treat the input file as raw float32 PCM instead of decoding it")
	analyzeCmd.Flags().DurationVarP(&azDuration, "duration", "t", 30*time.Second,
		"capture length for live stream URLs")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	samples, source, err := loadSamples(cmd, args)
	if err != nil {
		return err
	}

	role := analysis.ParseRole(azRole)

	engine, err := analysis.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	logging.Debug("starting analysis", logging.Fields{
		"source":  source,
		"samples": len(samples),
		"role":    role.String(),
	})

	start := time.Now()
	record, err := engine.Analyze(samples, role)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	logging.Debug("analysis complete", logging.Fields{
		"elapsed":   time.Since(start).String(),
		"composite": record.Composite,
		"risk":      string(record.RiskLevel),
	})

	if azReport {
		printReport(os.Stdout, record)
		return nil
	}

	switch strings.ToLower(outputFormat) {
	case "yaml":
		out, err := yaml.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		os.Stdout.Write(out)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}

	return nil
}

// loadSamples resolves the input argument to a sample buffer in the
// operating format
func loadSamples(cmd *cobra.Command, args []string) ([]float64, string, error) {
	if len(args) == 0 || args[0] == "-" {
		samples, err := readPCM(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read audio: %w", err)
		}
		return samples, "stdin", nil
	}

	source := args[0]

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		decoder := transcode.NewDecoder(nil)
		recording, err := decoder.DecodeStream(cmd.Context(), source, azDuration)
		if err != nil {
			return nil, "", fmt.Errorf("failed to capture stream: %w", err)
		}
		return recording.PCM, source, nil
	}

	if azRaw {
		f, err := os.Open(source)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()

		samples, err := readPCM(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read audio: %w", err)
		}
		return samples, source, nil
	}

	decoder := transcode.NewDecoder(nil)
	recording, err := decoder.DecodeFile(cmd.Context(), source)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode audio: %w", err)
	}
	return recording.PCM, source, nil
}

// readPCM decodes mono float32 little-endian samples from r.
func readPCM(r io.Reader) ([]float64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("input length %d is not a multiple of 4 bytes", len(raw))
	}

	samples := make([]float64, len(raw)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		samples[i] = float64(math.Float32frombits(bits))
	}
	return samples, nil
}

func printReport(w io.Writer, rec *analysis.IndicatorRecord) {
	d := rec.Diagnostics

	fmt.Fprintf(w, "RISK LEVEL: %s (composite %.0f/100, confidence %.0f%%)\n",
		rec.RiskLevel, rec.Composite, rec.Confidence)
	fmt.Fprintln(w, riskNarrative(rec))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "RT CLARITY       %3.0f  HNR %.1f dB, jitter %.2f%%. %s\n",
		rec.Clarity, d.HNR, d.Jitter, clarityNarrative(rec.Clarity))
	fmt.Fprintf(w, "FATIGUE INDEX    %3.0f  avg pause %.2fs, shimmer %.2f dB, HNR %.1f dB\n",
		rec.Fatigue, d.PauseMeanDur, d.ShimmerDB, d.HNR)
	fmt.Fprintf(w, "STRESS/AROUSAL   %3.0f  F0 %.0f Hz (±%.0f), jitter %.2f%%, LPC flux %.3f\n",
		rec.Stress, d.F0Mean, d.F0Std, d.Jitter, d.LPCFlux)
	fmt.Fprintf(w, "COGNITIVE LOAD   %3.0f  pause rate %.2f/s, voiced ratio %.0f%%\n",
		rec.Cognitive, d.PauseRate, d.VoicedRatio)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "DISCLAIMER: experimental acoustic indicators for research and")
	fmt.Fprintln(w, "situational awareness only. Not a certified fitness-for-duty")
	fmt.Fprintln(w, "determination.")
}

func riskNarrative(rec *analysis.IndicatorRecord) string {
	switch rec.RiskLevel {
	case analysis.RiskNominal:
		return "Within normal parameters. Voice acoustic profile consistent with an alert, rested speaker."
	case analysis.RiskMonitor:
		return "Trending above baseline. No immediate action required; supervisor situational awareness recommended."
	case analysis.RiskCaution:
		return "Meaningful degradation detected across multiple speech dimensions. Recommend crew welfare check."
	default:
		return "Significant deviation across acoustic channels. Fatigue risk management protocols recommended."
	}
}

func clarityNarrative(score float64) string {
	switch {
	case score >= 70:
		return "Readback likely intelligible."
	case score >= 45:
		return "Some breathiness. Listener may request repetition."
	default:
		return "Compromised intelligibility. Risk of readback errors."
	}
}
