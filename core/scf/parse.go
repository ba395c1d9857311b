// Package scf decodes Standard Chromatogram Format trace files.
package scf

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"chromaview/core/chromatogram"
	"chromaview/core/smooth"
)

const (
	headerSize = 44
	baseSize   = 12
)

// channelOrder is the on-disk order of the four sample blocks.
var channelOrder = [4]chromatogram.Channel{chromatogram.A, chromatogram.C, chromatogram.G, chromatogram.T}

// PeakPolicy chooses how per-base peak positions are derived.
type PeakPolicy int

const (
	// PeakInterpolate spreads bases evenly over the samples and ignores the
	// stored peak index, which some encoders fill with garbage.
	PeakInterpolate PeakPolicy = iota
	// PeakNative trusts the stored uint32 peak index when it is in range.
	PeakNative
)

// ParsePeakPolicy maps "interpolate" or "native" to a PeakPolicy.
func ParsePeakPolicy(s string) (PeakPolicy, error) {
	switch strings.ToLower(s) {
	case "", "interpolate":
		return PeakInterpolate, nil
	case "native":
		return PeakNative, nil
	}
	return 0, fmt.Errorf("unknown SCF peak policy %q", s)
}

func (p PeakPolicy) String() string {
	if p == PeakNative {
		return "native"
	}
	return "interpolate"
}

// Options tune decoding.
type Options struct {
	Peaks    PeakPolicy
	Decoders []Decoder // nil means Decoders
	Logger   *log.Logger
}

type header struct {
	samples       uint32
	samplesOffset uint32
	bases         uint32
	basesOffset   uint32
	version       string
	sampleSize    uint32
}

func readHeader(buf []byte) (header, error) {
	if len(buf) < headerSize {
		return header{}, fmt.Errorf("scf: %d-byte header: %w", len(buf), chromatogram.ErrInvalidHeader)
	}
	be := binary.BigEndian
	h := header{
		samples:       be.Uint32(buf[4:]),
		samplesOffset: be.Uint32(buf[8:]),
		bases:         be.Uint32(buf[12:]),
		basesOffset:   be.Uint32(buf[24:]),
		version:       strings.TrimRight(string(buf[36:40]), "\x00 "),
		sampleSize:    be.Uint32(buf[40:]),
	}
	if h.samples == 0 || h.bases == 0 {
		return h, fmt.Errorf("scf: %d samples, %d bases: %w", h.samples, h.bases, chromatogram.ErrInvalidHeader)
	}
	return h, nil
}

// Parse decodes buf into a Record named name.
func Parse(buf []byte, name string, opts Options) (*chromatogram.Record, error) {
	h, err := readHeader(buf)
	if err != nil {
		return nil, err
	}
	if h.sampleSize != 1 && h.sampleSize != 2 {
		return nil, fmt.Errorf("scf %s: sample size %d: %w", name, h.sampleSize, chromatogram.ErrUnsupportedSampleSize)
	}

	traces := readTraces(buf, h)
	if !chromatogram.HasTraceData(traces) {
		return nil, fmt.Errorf("scf %s: %w", name, chromatogram.ErrNoTraceData)
	}
	smooth.Channels(traces, smooth.SCFWindow)

	decoders := opts.Decoders
	if decoders == nil {
		decoders = Decoders
	}
	var (
		calls   []byte
		quals   []int
		peaks   []int
		samples = int(h.samples)
		maxLen  = chromatogram.MaxLen(traces)
	)
	for i := uint64(0); i < uint64(h.bases); i++ {
		start := uint64(h.basesOffset) + i*baseSize
		if start+baseSize > uint64(len(buf)) {
			if opts.Logger != nil {
				opts.Logger.Warn("scf: base records truncated", "file", name, "read", i, "declared", h.bases)
			}
			break
		}
		rec := baseRecord(buf[start : start+baseSize])
		calls = append(calls, DecodeBase(rec, decoders))
		quals = append(quals, quality(rec))
		peaks = append(peaks, min(peakFor(rec, int(i), int(h.bases), samples, opts.Peaks), maxLen))
	}
	if len(calls) == 0 {
		return nil, fmt.Errorf("scf %s: %w", name, chromatogram.ErrNoBaseCalls)
	}

	r := chromatogram.New(name, chromatogram.FormatSCF, traces, calls, quals, peaks)
	r.Version = h.version
	return r, nil
}

// readTraces reads the four contiguous channel blocks, stopping each at the
// end of the buffer.
func readTraces(buf []byte, h header) map[chromatogram.Channel][]float64 {
	traces := make(map[chromatogram.Channel][]float64, 4)
	n := uint64(h.samples)
	size := uint64(h.sampleSize)
	for k, ch := range channelOrder {
		start := uint64(h.samplesOffset) + uint64(k)*n*size
		var out []float64
		for j := uint64(0); j < n; j++ {
			p := start + j*size
			if p+size > uint64(len(buf)) {
				break
			}
			if size == 1 {
				out = append(out, float64(buf[p]))
			} else {
				out = append(out, float64(binary.BigEndian.Uint16(buf[p:])))
			}
		}
		traces[ch] = out
	}
	return traces
}

func peakFor(rec baseRecord, i, bases, samples int, policy PeakPolicy) int {
	if policy == PeakNative {
		if p := binary.BigEndian.Uint32(rec[0:4]); uint64(p) <= uint64(samples) {
			return int(p)
		}
	}
	return chromatogram.InterpolatedPeak(i, bases, samples)
}
