package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromaview/core/chromatogram"
)

func rec(seq string) *chromatogram.Record {
	q := make([]int, len(seq))
	p := make([]int, len(seq))
	for i := range q {
		q[i] = 10 + i%40
		p[i] = i * 4
	}
	tr := map[chromatogram.Channel][]float64{chromatogram.A: make([]float64, 4*len(seq))}
	return chromatogram.New("s.ab1", chromatogram.FormatAB1, tr, []byte(seq), q, p)
}

func TestWriteFASTA(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFASTA(&buf, rec(strings.Repeat("ACGT", 20)), 60))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, ">s.ab1"), out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Len(t, lines[1], 60)
	assert.Equal(t, strings.Repeat("ACGT", 5), lines[2])
}

func TestWriteRangeFASTA(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRangeFASTA(&buf, rec("ACGTNACGTN"), 3, 6, 0))
	assert.Contains(t, buf.String(), ">s.ab1:3-6")
	assert.Contains(t, buf.String(), "GTNA")

	assert.Error(t, WriteRangeFASTA(&buf, rec("ACGT"), 3, 9, 0))
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, rec("AC"), true))
	assert.Equal(t, TSVHeader+"\n1\tA\t10\t0\n2\tC\t11\t4\n", buf.String())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, rec(strings.Repeat("A", 70)), 20, errors.New("no trace data")))
	out := buf.String()
	assert.Contains(t, out, "s.ab1")
	assert.Contains(t, out, "AB1")
	assert.Contains(t, out, "no trace data")
	assert.Contains(t, out, strings.Repeat("A", 60)+"\n")
}

func TestSummarize(t *testing.T) {
	r := rec("ACGT") // quality 10, 11, 12, 13
	s := Summarize(r, 12, nil)
	assert.Equal(t, 4, s.SequenceLength)
	assert.Equal(t, 16, s.TraceLength)
	assert.InDelta(t, 11.5, s.MeanQuality, 1e-9)
	assert.Equal(t, 2, s.LowQuality)
	assert.Empty(t, s.Fallback)

	empty := chromatogram.New("e", chromatogram.FormatMock, nil, nil, nil, nil)
	assert.Equal(t, 0.0, MeanQuality(empty))
}
