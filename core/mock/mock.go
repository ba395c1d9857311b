// Package mock synthesizes a displayable chromatogram when a real file is
// missing or cannot be decoded.
package mock

import (
	"math"
	"math/rand/v2"

	"chromaview/core/chromatogram"
	"chromaview/core/smooth"
)

// Options shape the synthetic read. Zero fields take the defaults.
type Options struct {
	Bases          int     // 800
	SamplesPerBase int     // 4
	PeakWidth      float64 // 2, Gaussian σ in samples
}

// DefaultOptions match a typical Sanger read.
var DefaultOptions = Options{Bases: 800, SamplesPerBase: 4, PeakWidth: 2}

const (
	background    = 15  // non-matching channels draw from U[0,15)
	jitter        = 25  // every channel gets U(-25,25)
	minPeak       = 600 // peak heights draw from U[600,1000)
	peakSpread    = 400
	baseQuality   = 40
	qualityWobble = 10
	qualityDecay  = 0.05
)

var alphabet = [4]byte{'A', 'T', 'G', 'C'}

// Generate builds a random record named name. rnd must not be nil.
func Generate(name string, rnd *rand.Rand) *chromatogram.Record {
	return GenerateWith(name, rnd, DefaultOptions)
}

// GenerateWith is Generate with explicit options.
func GenerateWith(name string, rnd *rand.Rand, opts Options) *chromatogram.Record {
	if opts.Bases <= 0 {
		opts.Bases = DefaultOptions.Bases
	}
	if opts.SamplesPerBase <= 0 {
		opts.SamplesPerBase = DefaultOptions.SamplesPerBase
	}
	if opts.PeakWidth <= 0 {
		opts.PeakWidth = DefaultOptions.PeakWidth
	}
	n, spb := opts.Bases, opts.SamplesPerBase

	calls := make([]byte, n)
	heights := make([]float64, n)
	peaks := make([]int, n)
	quality := make([]int, n)
	for i := range calls {
		calls[i] = alphabet[rnd.IntN(len(alphabet))]
		heights[i] = minPeak + rnd.Float64()*peakSpread
		peaks[i] = i*spb + spb/2
		q := baseQuality + (rnd.Float64()*2-1)*qualityWobble - qualityDecay*float64(i)
		quality[i] = clamp(int(math.Round(q)), 10, chromatogram.MaxQuality)
	}

	total := n * spb
	traces := make(map[chromatogram.Channel][]float64, 4)
	for _, b := range alphabet {
		traces[chromatogram.Channel(b)] = make([]float64, total)
	}
	twoSigma2 := 2 * opts.PeakWidth * opts.PeakWidth
	for s := 0; s < total; s++ {
		base := s / spb
		d := float64(s - peaks[base])
		for _, b := range alphabet {
			var v float64
			if b == calls[base] {
				v = heights[base] * math.Exp(-d*d/twoSigma2)
			} else {
				v = rnd.Float64() * background
			}
			v += (rnd.Float64()*2 - 1) * jitter
			traces[chromatogram.Channel(b)][s] = math.Max(v, 0)
		}
	}
	smooth.Channels(traces, smooth.MockWindow)

	return chromatogram.New(name, chromatogram.FormatMock, traces, calls, quality, peaks)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
