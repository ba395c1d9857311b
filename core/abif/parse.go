// Package abif decodes Applied Biosystems ABIF (.ab1) trace files.
package abif

import (
	"bytes"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"chromaview/core/chromatogram"
)

// DefaultOrder is the channel order used when FWO_1 is missing or short.
var DefaultOrder = [4]chromatogram.Channel{chromatogram.G, chromatogram.A, chromatogram.T, chromatogram.C}

var dataTags = [4]string{"DATA9", "DATA10", "DATA11", "DATA12"}

// Options tune decoding.
type Options struct {
	// InlineSmallData reads data of 4 bytes or less from the entry's offset
	// field. Off by default until checked against real instrument files.
	InlineSmallData bool

	// Rand drives quality synthesis when PCON is absent. Nil means a fixed seed.
	Rand *rand.Rand

	Logger *log.Logger
}

// Parse decodes buf into a Record named name.
func Parse(buf []byte, name string, opts Options) (*chromatogram.Record, error) {
	dir, err := ReadDirectory(buf, opts.InlineSmallData)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		for k, e := range dir {
			if e.Data == nil {
				opts.Logger.Debug("abif: skipping entry outside buffer", "tag", k, "offset", e.DataOffset, "size", e.DataSize)
			}
		}
	}

	order := channelOrder(dir)
	traces := make(map[chromatogram.Channel][]float64, 4)
	for i, tag := range dataTags {
		var samples []float64
		if e, ok := dir.lookup(tag); ok {
			raw := uint16s(e.Data, -1)
			samples = make([]float64, len(raw))
			for j, v := range raw {
				samples[j] = float64(v)
			}
		}
		traces[order[i]] = samples
	}
	if !chromatogram.HasTraceData(traces) {
		return nil, fmt.Errorf("abif %s: DATA9-12 empty: %w", name, chromatogram.ErrNoTraceData)
	}

	var calls []byte
	if e, ok := dir.lookup("PBAS1", "PBAS2"); ok {
		calls = chromatogram.FilterBases(e.Data)
	}
	if len(calls) == 0 {
		return nil, fmt.Errorf("abif %s: %w", name, chromatogram.ErrNoBaseCalls)
	}

	maxLen := chromatogram.MaxLen(traces)
	quality, synthesized := qualities(dir, len(calls), opts.Rand)
	rec := chromatogram.New(name, chromatogram.FormatAB1, traces, calls, quality, peaks(dir, len(calls), maxLen))
	rec.QualitySynthesized = synthesized
	if e, ok := dir.lookup("SMPL1"); ok {
		rec.SampleName = pString(e.Data)
	}
	return rec, nil
}

func channelOrder(dir Directory) [4]chromatogram.Channel {
	e, ok := dir.lookup("FWO_1")
	if !ok {
		return DefaultOrder
	}
	var (
		order [4]chromatogram.Channel
		seen  = map[chromatogram.Channel]bool{}
		n     int
	)
	for _, b := range e.Data {
		ch, ok := chromatogram.ParseChannel(b)
		if !ok || seen[ch] || n == 4 {
			continue
		}
		seen[ch] = true
		order[n] = ch
		n++
	}
	if n < 4 {
		return DefaultOrder
	}
	return order
}

func qualities(dir Directory, n int, rnd *rand.Rand) ([]int, bool) {
	out := make([]int, n)
	e, ok := dir.lookup("PCON1", "PCON2")
	if !ok {
		if rnd == nil {
			rnd = rand.New(rand.NewPCG(20, 60))
		}
		for i := range out {
			out[i] = 20 + rnd.IntN(40)
		}
		return out, true
	}
	m := min(int(e.Count), len(e.Data), n)
	for i := range out {
		if i >= m {
			out[i] = chromatogram.FallbackQuality
			continue
		}
		out[i] = min(int(e.Data[i]), chromatogram.MaxQuality)
	}
	return out, false
}

func peaks(dir Directory, n, maxLen int) []int {
	var native []int
	if e, ok := dir.lookup("PLOC1", "PLOC2"); ok {
		native = uint16s(e.Data, min(int(e.Count), n))
	}
	out := make([]int, n)
	for i := range out {
		if i < len(native) {
			out[i] = min(native[i], maxLen)
			continue
		}
		out[i] = chromatogram.InterpolatedPeak(i, n, maxLen)
	}
	return out
}

// pString decodes an ABIF pString (length byte then text), falling back to a
// NUL-trimmed cString.
func pString(b []byte) string {
	if len(b) > 0 && int(b[0]) == len(b)-1 {
		return string(b[1:])
	}
	return string(bytes.TrimRight(b, "\x00"))
}
