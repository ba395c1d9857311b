package scf

import "chromaview/core/chromatogram"

// baseRecord is one 12-byte SCF base struct.
type baseRecord []byte

func (b baseRecord) prob() [4]byte { return [4]byte{b[4], b[5], b[6], b[7]} }

// probOrder maps confidence bytes 4..7 to their channel.
var probOrder = [4]byte{'A', 'C', 'G', 'T'}

// Decoder derives a base symbol from a record; ok is false when it has no
// opinion and the next decoder should be tried.
type Decoder func(rec baseRecord) (sym byte, ok bool)

// Decoders is the ranked list tried for every base; the first match wins.
var Decoders = []Decoder{
	ASCIIByte,
	MaxConfidence,
	SpareBytes,
}

// DecodeBase runs decoders in order and falls back to 'N'.
func DecodeBase(rec baseRecord, decoders []Decoder) byte {
	for _, d := range decoders {
		if sym, ok := d(rec); ok {
			return sym
		}
	}
	return chromatogram.UnknownBase
}

// ASCIIByte reads byte 8 as a letter. Letters other than A/C/G/T/N map to 'N'.
func ASCIIByte(rec baseRecord) (byte, bool) {
	return letter(rec[8])
}

// MaxConfidence picks the channel with the highest confidence, ties resolved
// in A, C, G, T order. It has no opinion when all four are zero.
func MaxConfidence(rec baseRecord) (byte, bool) {
	p := rec.prob()
	best := 0
	for k := 1; k < 4; k++ {
		if p[k] > p[best] {
			best = k
		}
	}
	if p[best] == 0 {
		return 0, false
	}
	return probOrder[best], true
}

// SpareBytes scans bytes 9..11 for the first letter.
func SpareBytes(rec baseRecord) (byte, bool) {
	for _, b := range rec[9:12] {
		if sym, ok := letter(b); ok {
			return sym, true
		}
	}
	return 0, false
}

func letter(b byte) (byte, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		b -= 'a' - 'A'
	case b >= 'A' && b <= 'Z':
	default:
		return 0, false
	}
	if !chromatogram.IsBaseSymbol(b) {
		return chromatogram.UnknownBase, true
	}
	return b, true
}

// quality scales the strongest confidence to 0..60, or returns the sentinel
// when the record carries none.
func quality(rec baseRecord) int {
	p := rec.prob()
	m := max(p[0], p[1], p[2], p[3])
	if m == 0 {
		return chromatogram.FallbackQuality
	}
	return int(float64(m)/255*chromatogram.MaxQuality + 0.5)
}
