package abif

import (
	"encoding/binary"
	"fmt"

	"chromaview/core/chromatogram"
)

const (
	headerSize     = 30
	entrySize      = 28
	countOffset    = 18
	dirOffsetField = 26
	inlineField    = 20 // offset of the data-offset field inside an entry
)

// Entry is one 28-byte directory record.
type Entry struct {
	Name        string
	Number      int32
	ElementType uint16
	ElementSize uint16
	Count       uint32
	DataSize    uint32
	DataOffset  uint32

	Data []byte // nil when the data range falls outside the buffer
}

// Key is the lookup key "{name}{number}", e.g. "DATA9" or "FWO_1".
func (e Entry) Key() string { return fmt.Sprintf("%s%d", e.Name, e.Number) }

// Directory indexes entries by Key.
type Directory map[string]Entry

// ReadDirectory decodes the header and directory of an ABIF buffer. When
// inline is set, entries with DataSize <= 4 read their bytes from the offset
// field itself, as the ABIF format defines; otherwise the offset is always
// treated as absolute.
func ReadDirectory(buf []byte, inline bool) (Directory, error) {
	if len(buf) < headerSize || string(buf[:4]) != "ABIF" {
		return nil, fmt.Errorf("abif: bad signature or header: %w", chromatogram.ErrMalformedContainer)
	}
	n := uint64(binary.BigEndian.Uint32(buf[countOffset:]))
	off := uint64(binary.BigEndian.Uint32(buf[dirOffsetField:]))
	if off+n*entrySize > uint64(len(buf)) {
		return nil, fmt.Errorf("abif: directory of %d entries at %d exceeds %d bytes: %w",
			n, off, len(buf), chromatogram.ErrMalformedContainer)
	}

	dir := make(Directory, n)
	for i := uint64(0); i < n; i++ {
		p := buf[off+i*entrySize : off+(i+1)*entrySize]
		e := Entry{
			Name:        string(p[0:4]),
			Number:      int32(binary.BigEndian.Uint32(p[4:8])),
			ElementType: binary.BigEndian.Uint16(p[8:10]),
			ElementSize: binary.BigEndian.Uint16(p[10:12]),
			Count:       binary.BigEndian.Uint32(p[12:16]),
			DataSize:    binary.BigEndian.Uint32(p[16:20]),
			DataOffset:  binary.BigEndian.Uint32(p[20:24]),
		}
		switch {
		case inline && e.DataSize <= 4:
			e.Data = p[inlineField : inlineField+e.DataSize]
		case uint64(e.DataOffset)+uint64(e.DataSize) <= uint64(len(buf)):
			e.Data = buf[e.DataOffset : e.DataOffset+e.DataSize]
		}
		dir[e.Key()] = e
	}
	return dir, nil
}

// lookup returns the data of the first present key.
func (d Directory) lookup(keys ...string) (Entry, bool) {
	for _, k := range keys {
		if e, ok := d[k]; ok && e.Data != nil {
			return e, true
		}
	}
	return Entry{}, false
}

func uint16s(b []byte, max int) []int {
	n := len(b) / 2
	if max >= 0 && max < n {
		n = max
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(binary.BigEndian.Uint16(b[2*i:]))
	}
	return out
}
