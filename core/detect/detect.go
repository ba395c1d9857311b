// Package detect sniffs trace-file magic bytes.
package detect

import (
	"bytes"
	"fmt"

	"chromaview/core/chromatogram"
)

var (
	scfMagic  = []byte{0x2E, 0x73, 0x63, 0x66} // ".scf"
	abifMagic = []byte("ABIF")
)

// Detect returns the container format of buf.
func Detect(buf []byte) (chromatogram.Format, error) {
	if len(buf) < 4 {
		return "", fmt.Errorf("detect: %d bytes: %w", len(buf), chromatogram.ErrTooSmall)
	}
	if bytes.Equal(buf[:4], scfMagic) {
		return chromatogram.FormatSCF, nil
	}
	if bytes.Equal(buf[:4], abifMagic) {
		return chromatogram.FormatAB1, nil
	}
	return "", fmt.Errorf("detect: magic %q: %w", buf[:4], chromatogram.ErrUnknownFormat)
}
