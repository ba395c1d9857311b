// Package fixture builds small, well-formed ABIF and SCF buffers for tests.
package fixture

import "encoding/binary"

// Tag is one ABIF directory entry with its payload.
type Tag struct {
	Name     string
	Number   int32
	Type     uint16
	ElemSize uint16
	Count    uint32
	Data     []byte
}

// ABIF element types used by the helpers.
const (
	TypeByte    = 2
	TypeChar    = 2
	TypeShort   = 4
	TypePString = 18
)

// Chars is a char-array tag (PBAS, FWO_).
func Chars(name string, num int32, s string) Tag {
	return Tag{Name: name, Number: num, Type: TypeChar, ElemSize: 1, Count: uint32(len(s)), Data: []byte(s)}
}

// Bytes is a byte-array tag (PCON).
func Bytes(name string, num int32, b ...byte) Tag {
	return Tag{Name: name, Number: num, Type: TypeByte, ElemSize: 1, Count: uint32(len(b)), Data: b}
}

// Shorts is a big-endian uint16 array tag (DATA, PLOC).
func Shorts(name string, num int32, vals ...int) Tag {
	return Tag{Name: name, Number: num, Type: TypeShort, ElemSize: 2, Count: uint32(len(vals)), Data: U16(vals...)}
}

// PString is a length-prefixed string tag (SMPL).
func PString(name string, num int32, s string) Tag {
	b := append([]byte{byte(len(s))}, s...)
	return Tag{Name: name, Number: num, Type: TypePString, ElemSize: 1, Count: uint32(len(b)), Data: b}
}

// U16 encodes vals as big-endian uint16s.
func U16(vals ...int) []byte {
	out := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

const abifHeader = 128

// ABIF lays out a header, every tag's data at an absolute offset, then the
// directory.
func ABIF(tags ...Tag) []byte { return build(false, tags) }

// ABIFInline stores payloads of 4 bytes or less inside the offset field, as
// instrument software does.
func ABIFInline(tags ...Tag) []byte { return build(true, tags) }

func build(inline bool, tags []Tag) []byte {
	buf := make([]byte, abifHeader)
	copy(buf, "ABIF")
	binary.BigEndian.PutUint16(buf[4:], 101)
	copy(buf[6:], "tdir")
	binary.BigEndian.PutUint32(buf[10:], 1)
	binary.BigEndian.PutUint16(buf[14:], 1023)
	binary.BigEndian.PutUint16(buf[16:], 28)
	binary.BigEndian.PutUint32(buf[18:], uint32(len(tags)))
	binary.BigEndian.PutUint32(buf[22:], uint32(len(tags)*28))

	offsets := make([]uint32, len(tags))
	for i, t := range tags {
		if inline && len(t.Data) <= 4 {
			continue
		}
		offsets[i] = uint32(len(buf))
		buf = append(buf, t.Data...)
	}

	binary.BigEndian.PutUint32(buf[26:], uint32(len(buf)))
	for i, t := range tags {
		e := make([]byte, 28)
		copy(e[0:4], t.Name)
		binary.BigEndian.PutUint32(e[4:], uint32(t.Number))
		binary.BigEndian.PutUint16(e[8:], t.Type)
		binary.BigEndian.PutUint16(e[10:], t.ElemSize)
		binary.BigEndian.PutUint32(e[12:], t.Count)
		binary.BigEndian.PutUint32(e[16:], uint32(len(t.Data)))
		if inline && len(t.Data) <= 4 {
			copy(e[20:24], t.Data)
		} else {
			binary.BigEndian.PutUint32(e[20:], offsets[i])
		}
		buf = append(buf, e...)
	}
	return buf
}

// MinimalABIF is a four-base file with 40-sample traces on every channel.
func MinimalABIF() []byte {
	trace := func(peak int) []int {
		s := make([]int, 40)
		for i := range s {
			if d := i - peak; d > -3 && d < 3 {
				s[i] = 1000 - 200*d*d
			}
		}
		return s
	}
	return ABIF(
		Chars("FWO_", 1, "GATC"),
		Shorts("DATA", 9, trace(20)...),
		Shorts("DATA", 10, trace(0)...),
		Shorts("DATA", 11, trace(30)...),
		Shorts("DATA", 12, trace(10)...),
		Chars("PBAS", 1, "ACGT"),
		Bytes("PCON", 1, 10, 20, 30, 40),
		Shorts("PLOC", 1, 0, 10, 20, 30),
	)
}

// SCFBase is one 12-byte SCF base record.
type SCFBase struct {
	Peak  uint32
	Prob  [4]byte // A, C, G, T
	Base  byte
	Spare [3]byte
}

const scfHeader = 128

// SCF lays out a header, four channels (A, C, G, T) of sampleSize-byte
// samples, then the base records.
func SCF(sampleSize int, samples [4][]int, bases []SCFBase) []byte {
	n := len(samples[0])
	buf := make([]byte, scfHeader)
	copy(buf, ".scf")
	binary.BigEndian.PutUint32(buf[4:], uint32(n))
	binary.BigEndian.PutUint32(buf[8:], scfHeader)
	binary.BigEndian.PutUint32(buf[12:], uint32(len(bases)))
	binary.BigEndian.PutUint32(buf[24:], uint32(scfHeader+4*n*sampleSize))
	copy(buf[36:40], "2.00")
	binary.BigEndian.PutUint32(buf[40:], uint32(sampleSize))

	for _, ch := range samples {
		for i := 0; i < n; i++ {
			v := 0
			if i < len(ch) {
				v = ch[i]
			}
			if sampleSize == 1 {
				buf = append(buf, byte(v))
			} else {
				buf = append(buf, U16(v)...)
			}
		}
	}
	for _, b := range bases {
		rec := make([]byte, 12)
		binary.BigEndian.PutUint32(rec, b.Peak)
		copy(rec[4:8], b.Prob[:])
		rec[8] = b.Base
		copy(rec[9:12], b.Spare[:])
		buf = append(buf, rec...)
	}
	return buf
}

// MinimalSCF is a four-base, 40-sample, 2-byte SCF with explicit base letters.
func MinimalSCF() []byte {
	var samples [4][]int
	for k := range samples {
		samples[k] = make([]int, 40)
		samples[k][5+10*k] = 500
	}
	bases := []SCFBase{
		{Peak: 5, Prob: [4]byte{255, 0, 0, 0}, Base: 'A'},
		{Peak: 15, Prob: [4]byte{0, 128, 0, 0}, Base: 'C'},
		{Peak: 25, Prob: [4]byte{0, 0, 64, 0}, Base: 'g'},
		{Peak: 35, Prob: [4]byte{0, 0, 0, 0}, Base: 'T'},
	}
	return SCF(2, samples, bases)
}
