package cmd

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewsight/vocalis/analysis"
)

func TestReadPCM(t *testing.T) {
	samples := []float32{0.5, -0.25, 1.0, 0.0}
	var buf bytes.Buffer
	for _, s := range samples {
		var raw [4]byte
		binary.LittleEndian.PutUint32(raw[:], math.Float32bits(s))
		buf.Write(raw[:])
	}

	decoded, err := readPCM(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, 4)
	for i, s := range samples {
		assert.InDelta(t, float64(s), decoded[i], 1e-7)
	}
}

func TestReadPCMTruncatedInput(t *testing.T) {
	_, err := readPCM(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)
}

func TestReadPCMEmpty(t *testing.T) {
	decoded, err := readPCM(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestPrintReport(t *testing.T) {
	record := &analysis.IndicatorRecord{
		Fatigue:    20,
		Stress:     15,
		Cognitive:  10,
		Clarity:    85,
		Composite:  16,
		RiskLevel:  analysis.RiskNominal,
		Confidence: 90,
	}
	record.Diagnostics.F0Mean = 180
	record.Diagnostics.HNR = 18.5

	var out strings.Builder
	printReport(&out, record)

	report := out.String()
	assert.Contains(t, report, "NOMINAL")
	assert.Contains(t, report, "RT CLARITY")
	assert.Contains(t, report, "FATIGUE INDEX")
	assert.Contains(t, report, "DISCLAIMER")
	assert.Contains(t, report, "Readback likely intelligible")
}
