package writers

import (
	"fmt"
	"io"

	"chromaview/core/chromatogram"
)

// Payload is everything a record writer may need.
type Payload struct {
	Record           *chromatogram.Record
	Fallback         error // decoder error when Record is synthetic
	QualityThreshold int
	LineWidth        int
	Header           bool
}

// RecordWriters maps an output format to its handler. Register in init()
// blocks; last registration wins.
var RecordWriters = map[string]func(w io.Writer, p Payload) error{}

// RegisterRecord installs fn for format.
func RegisterRecord(format string, fn func(io.Writer, Payload) error) { RecordWriters[format] = fn }

// WriteRecord dispatches p to the writer registered for format.
func WriteRecord(format string, w io.Writer, p Payload) error {
	fn, ok := RecordWriters[format]
	if !ok {
		return fmt.Errorf("unknown record format %q (no writer registered)", format)
	}
	return fn(w, p)
}
