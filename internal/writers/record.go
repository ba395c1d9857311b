package writers

import (
	"io"

	"chromaview/internal/output"
)

func init() {
	RegisterRecord(output.FormatText, func(w io.Writer, p Payload) error {
		return output.WriteText(w, p.Record, p.QualityThreshold, p.Fallback)
	})
	RegisterRecord(output.FormatJSON, func(w io.Writer, p Payload) error {
		return output.WriteJSON(w, p.Record, p.Fallback)
	})
	RegisterRecord(output.FormatFASTA, func(w io.Writer, p Payload) error {
		return output.WriteFASTA(w, p.Record, p.LineWidth)
	})
	RegisterRecord(output.FormatTSV, func(w io.Writer, p Payload) error {
		return output.WriteTSV(w, p.Record, p.Header)
	})
}
