package scf

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromaview/core/chromatogram"
	"chromaview/internal/fixture"
)

func TestMinimal(t *testing.T) {
	rec, err := Parse(fixture.MinimalSCF(), "min.scf", Options{})
	require.NoError(t, err)

	assert.Equal(t, "ACGT", rec.Sequence)
	assert.Equal(t, chromatogram.FormatSCF, rec.FileFormat)
	assert.Equal(t, "2.00", rec.Version)
	// 255 → 60, 128 → 30, 64 → 15, none → 20.
	assert.Equal(t, []int{60, 30, 15, 20}, rec.Quality)
	// Interpolated regardless of the stored 5/15/25/35.
	assert.Equal(t, []int{0, 10, 20, 30}, rec.PeakLocations)
	require.NoError(t, rec.Validate())

	for _, ch := range channelOrder {
		assert.Len(t, rec.Traces[ch], 40)
	}
	// Smoothed with window 3: the 500 spike is spread out.
	a := rec.Traces[chromatogram.A]
	assert.Less(t, a[5], 500.0)
	assert.Greater(t, a[4], 0.0)
}

func TestNativePeakPolicy(t *testing.T) {
	rec, err := Parse(fixture.MinimalSCF(), "min.scf", Options{Peaks: PeakNative})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 15, 25, 35}, rec.PeakLocations)
}

func TestNativePeakOutOfRangeInterpolates(t *testing.T) {
	samples := [4][]int{make([]int, 20), make([]int, 20), make([]int, 20), make([]int, 20)}
	samples[0][3] = 9
	buf := fixture.SCF(1, samples, []fixture.SCFBase{
		{Peak: 7, Base: 'A'},
		{Peak: 1 << 30, Base: 'C'},
	})
	rec, err := Parse(buf, "x", Options{Peaks: PeakNative})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 10}, rec.PeakLocations)
}

func TestByteSamples(t *testing.T) {
	samples := [4][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}
	buf := fixture.SCF(1, samples, []fixture.SCFBase{{Base: 'T'}})
	rec, err := Parse(buf, "x", Options{})
	require.NoError(t, err)
	// Window 3 leaves the edges of a 3-sample channel untouched.
	assert.Equal(t, 4.0, rec.Traces[chromatogram.C][0])
	assert.Equal(t, 12.0, rec.Traces[chromatogram.T][2])
	assert.InDelta(t, 11.0, rec.Traces[chromatogram.T][1], 1e-9)
}

func TestDecoderPrecedence(t *testing.T) {
	rec := func(prob [4]byte, base byte, spare [3]byte) baseRecord {
		b := make([]byte, 12)
		copy(b[4:8], prob[:])
		b[8] = base
		copy(b[9:], spare[:])
		return b
	}
	cases := []struct {
		name string
		rec  baseRecord
		want byte
	}{
		{"ascii wins over confidences", rec([4]byte{0, 0, 0, 200}, 'a', [3]byte{}), 'A'},
		{"ambiguity letter is N", rec([4]byte{200, 0, 0, 0}, 'R', [3]byte{}), 'N'},
		{"argmax when byte 8 is not a letter", rec([4]byte{1, 9, 3, 2}, 0, [3]byte{}), 'C'},
		{"argmax tie prefers A,C,G,T order", rec([4]byte{0, 0, 7, 7}, '-', [3]byte{}), 'G'},
		{"spare bytes when all zero", rec([4]byte{}, 0, [3]byte{0, 't', 'A'}), 'T'},
		{"N when nothing decodes", rec([4]byte{}, 0, [3]byte{1, 2, 3}), 'N'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodeBase(tc.rec, Decoders))
		})
	}
}

func TestEachDecoderAlone(t *testing.T) {
	r := baseRecord(make([]byte, 12))
	_, ok := ASCIIByte(r)
	assert.False(t, ok)
	_, ok = MaxConfidence(r)
	assert.False(t, ok)
	_, ok = SpareBytes(r)
	assert.False(t, ok)

	r[6] = 1
	sym, ok := MaxConfidence(r)
	assert.True(t, ok)
	assert.Equal(t, byte('G'), sym)
}

func TestAllZeroFallback(t *testing.T) {
	samples := [4][]int{make([]int, 8), make([]int, 8), make([]int, 8), make([]int, 8)}
	samples[2][4] = 100
	buf := fixture.SCF(2, samples, []fixture.SCFBase{{Base: 0, Spare: [3]byte{'1', 0, '#'}}})
	rec, err := Parse(buf, "x", Options{})
	require.NoError(t, err)
	assert.Equal(t, "N", rec.Sequence)
	assert.Equal(t, []int{20}, rec.Quality)
}

func TestTruncatedBasesPartialSuccess(t *testing.T) {
	buf := fixture.MinimalSCF()
	buf = buf[:len(buf)-12-5] // cut the last record and part of the third
	rec, err := Parse(buf, "x", Options{})
	require.NoError(t, err)
	assert.Equal(t, "AC", rec.Sequence)
	assert.Equal(t, 2, rec.SequenceLength)
	require.NoError(t, rec.Validate())
}

func TestErrors(t *testing.T) {
	withHeader := func(off int, v uint32) []byte {
		b := fixture.MinimalSCF()
		binary.BigEndian.PutUint32(b[off:], v)
		return b
	}
	noBases := fixture.MinimalSCF()
	binary.BigEndian.PutUint32(noBases[24:], uint32(len(noBases)))

	cases := []struct {
		name string
		buf  []byte
		want error
	}{
		{"short header", []byte(".scf\x00\x00"), chromatogram.ErrInvalidHeader},
		{"zero samples", withHeader(4, 0), chromatogram.ErrInvalidHeader},
		{"zero bases", withHeader(12, 0), chromatogram.ErrInvalidHeader},
		{"sample size 4", withHeader(40, 4), chromatogram.ErrUnsupportedSampleSize},
		{"samples past end", withHeader(8, 1<<24), chromatogram.ErrNoTraceData},
		{"bases past end", noBases, chromatogram.ErrNoBaseCalls},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.buf, "x", Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestParsePeakPolicy(t *testing.T) {
	p, err := ParsePeakPolicy("Native")
	require.NoError(t, err)
	assert.Equal(t, PeakNative, p)
	p, err = ParsePeakPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PeakInterpolate, p)
	_, err = ParsePeakPolicy("guess")
	assert.Error(t, err)
	assert.Equal(t, "native", PeakNative.String())
}
