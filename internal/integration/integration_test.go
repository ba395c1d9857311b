// internal/integration/integration_test.go
package integration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromaview/internal/app"
	"chromaview/internal/fixture"
	"chromaview/pkg/api"
)

type files struct{ ab1, scf, junk string }

func write(t *testing.T) files {
	t.Helper()
	dir := t.TempDir()
	f := files{
		ab1:  filepath.Join(dir, "min.ab1"),
		scf:  filepath.Join(dir, "min.scf"),
		junk: filepath.Join(dir, "junk.bin"),
	}
	require.NoError(t, os.WriteFile(f.ab1, fixture.MinimalABIF(), 0o644))
	require.NoError(t, os.WriteFile(f.scf, fixture.MinimalSCF(), 0o644))
	require.NoError(t, os.WriteFile(f.junk, []byte("not a chromatogram"), 0o644))
	return f
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestInspectText(t *testing.T) {
	f := write(t)
	code, out, errs := run(t, "inspect", f.ab1)
	require.Equal(t, 0, code, errs)
	assert.Contains(t, out, "min.ab1")
	assert.Contains(t, out, "AB1")
	assert.Contains(t, out, "ACGT")
}

func TestInspectJSON(t *testing.T) {
	f := write(t)
	code, out, errs := run(t, "inspect", "-o", "json", f.scf)
	require.Equal(t, 0, code, errs)
	var v api.ChromatogramV1
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "SCF", v.FileFormat)
	assert.Equal(t, "ACGT", v.Sequence)
	assert.Len(t, v.Traces, 4)
	assert.Empty(t, v.Fallback)
}

func TestInspectFallbackAndStrict(t *testing.T) {
	f := write(t)
	code, out, errs := run(t, "inspect", "-o", "json", "--seed", "1", f.junk)
	require.Equal(t, 0, code, errs)
	var v api.ChromatogramV1
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "MOCK", v.FileFormat)
	assert.Equal(t, 800, v.SequenceLength)
	assert.NotEmpty(t, v.Fallback)
	assert.Contains(t, errs, "substituting mock data")

	code, _, errs = run(t, "--strict", "inspect", f.junk)
	assert.Equal(t, 3, code)
	assert.Contains(t, errs, "error:")
}

func TestExport(t *testing.T) {
	f := write(t)
	code, out, errs := run(t, "export", f.ab1)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, ">min.ab1\nACGT\n", out)

	code, out, errs = run(t, "export", "--range", "2-3", f.ab1)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, ">min.ab1:2-3\nCG\n", out)

	code, _, errs = run(t, "export", "--range", "2-9", f.ab1)
	assert.Equal(t, 2, code)
	assert.Contains(t, errs, "invalid highlight range")
}

func TestViewClickEdit(t *testing.T) {
	f := write(t)
	// 40 samples over 1200 px: peaks 0,10,20,30 sit at x 0,300,600,900.
	code, out, errs := run(t, "view", "--click", "310", "--edit", "g", "--hover", "620", f.ab1)
	require.Equal(t, 0, code, errs)

	var g api.GeometryV1
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Equal(t, "AGGT", g.Sequence)
	require.NotNil(t, g.Selected)
	assert.Equal(t, 1, *g.Selected)
	require.NotNil(t, g.Hovered)
	assert.Equal(t, 2, *g.Hovered)
	assert.Equal(t, []int{1}, g.Edited)
	assert.Equal(t, 1200, g.Width)
	assert.Equal(t, 300, g.Height)
	require.Len(t, g.Labels, 4)
	assert.InDelta(t, 300.0, g.Labels[1].X, 1e-9)
	assert.Len(t, g.Polylines, 4)
}

func TestViewEditWithoutSelection(t *testing.T) {
	f := write(t)
	code, _, errs := run(t, "view", "--click", "150", "--edit", "A", f.ab1)
	assert.Equal(t, 2, code)
	assert.Contains(t, errs, "not selected")
}

func TestViewHighlightFASTA(t *testing.T) {
	f := write(t)
	code, out, errs := run(t, "view", "--range", "2-3", "-o", "fasta", f.ab1)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, ">min.ab1:2-3\nCG\n", out)
}

func TestViewChannelsAndWidth(t *testing.T) {
	f := write(t)
	code, out, errs := run(t, "view", "--channels", "GA", "--width", "400", "--zoom", "20", f.ab1)
	require.Equal(t, 0, code, errs)
	var g api.GeometryV1
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Equal(t, 400, g.Width)
	// zoom 20 over 400 px shows samples 0..20; the window end is inclusive
	// for labels, so peaks 0, 10 and 20 are labelled.
	assert.Equal(t, 0, g.StartSample)
	assert.Equal(t, 20, g.EndSample)
	assert.Len(t, g.Labels, 3)
	var chans []string
	for _, p := range g.Polylines {
		chans = append(chans, p.Channel)
	}
	assert.ElementsMatch(t, []string{"A", "G"}, chans)
}

func TestDetect(t *testing.T) {
	f := write(t)
	code, out, _ := run(t, "detect", f.ab1, f.scf)
	require.Equal(t, 0, code)
	assert.Equal(t, f.ab1+"\tAB1\n"+f.scf+"\tSCF\n", out)

	code, out, errs := run(t, "detect", f.junk)
	assert.Equal(t, 3, code)
	assert.Equal(t, f.junk+"\tunknown\n", out)
	assert.Contains(t, errs, "detect failed")
}

func TestBatch(t *testing.T) {
	f := write(t)
	code, out, errs := run(t, "batch", "--seed", "7", filepath.Join(filepath.Dir(f.ab1), "*"))
	require.Equal(t, 0, code, errs)

	var got []api.SummaryV1
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var s api.SummaryV1
		require.NoError(t, json.Unmarshal(sc.Bytes(), &s), sc.Text())
		got = append(got, s)
	}
	require.Len(t, got, 3)
	// Glob order: junk.bin, min.ab1, min.scf.
	assert.Equal(t, "MOCK", got[0].FileFormat)
	assert.NotEmpty(t, got[0].Fallback)
	assert.Equal(t, "AB1", got[1].FileFormat)
	assert.InDelta(t, 25.0, got[1].MeanQuality, 1e-9)
	assert.Equal(t, 1, got[1].LowQuality)
	assert.Equal(t, "SCF", got[2].FileFormat)

	code, out, _ = run(t, "batch", "--skip-mock", "-o", "tsv", f.junk, f.ab1)
	require.Equal(t, 0, code)
	assert.Equal(t, 2, strings.Count(out, "\n"), out)
}

func TestParallelMatchesSerial(t *testing.T) {
	f := write(t)
	batch := func(threads int) string {
		code, out, errs := run(t, "batch", "--seed", "42", "--threads", fmt.Sprint(threads), f.junk, f.ab1, f.scf, f.junk)
		require.Equal(t, 0, code, errs)
		return out
	}
	assert.Equal(t, batch(1), batch(4))
}

func TestUsageExitCodes(t *testing.T) {
	f := write(t)
	for _, args := range [][]string{
		{"frobnicate"},
		{"inspect"},
		{"inspect", "-o", "xml", f.ab1},
		{"view", "--zoom", "0", f.ab1},
		{"batch", filepath.Join(t.TempDir(), "*.ab1")},
	} {
		code, _, errs := run(t, args...)
		assert.Equal(t, 2, code, "%v: %s", args, errs)
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := run(t, "--version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "chromaview version "))

	code, out, _ = run(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Available Commands")
}

func TestCancelledBatchExit130(t *testing.T) {
	f := write(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"batch", f.ab1, f.scf}, io.Discard, io.Discard)
	assert.Equal(t, 130, code)
}
