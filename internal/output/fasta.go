package output

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"chromaview/core/chromatogram"
)

// WriteFASTA writes the record as a line-wrapped FASTA entry whose ID is the
// file name and description the sample name, if any. width <= 0 means
// DefaultLineWidth.
func WriteFASTA(w io.Writer, r *chromatogram.Record, width int) error {
	return writeFASTA(w, r.FileName, r.SampleName, r.BaseCalls, width)
}

// WriteRangeFASTA writes bases start..end (1-based inclusive) with the range
// appended to the ID.
func WriteRangeFASTA(w io.Writer, r *chromatogram.Record, start, end, width int) error {
	sub, err := r.Subsequence(start, end)
	if err != nil {
		return err
	}
	id := fmt.Sprintf("%s:%d-%d", r.FileName, start, end)
	return writeFASTA(w, id, "", []byte(sub), width)
}

func writeFASTA(w io.Writer, id, desc string, bases []byte, width int) error {
	if width <= 0 {
		width = DefaultLineWidth
	}
	s := linear.NewSeq(id, alphabet.BytesToLetters(bases), alphabet.DNAredundant)
	s.Desc = desc
	_, err := fasta.NewWriter(w, width).Write(s)
	return err
}

// WriteTSV writes the per-base table.
func WriteTSV(w io.Writer, r *chromatogram.Record, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for i, b := range r.BaseCalls {
		if _, err := fmt.Fprintf(w, "%d\t%c\t%d\t%d\n", i+1, b, r.Quality[i], r.PeakLocations[i]); err != nil {
			return err
		}
	}
	return nil
}
