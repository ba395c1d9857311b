package writers

import (
	"fmt"
	"io"

	"chromaview/internal/jsonlutil"
	"chromaview/internal/output"
	"chromaview/pkg/api"
)

// SummaryTSVHeader heads the tab-separated batch table.
const SummaryTSVHeader = "file\tformat\tbases\tsamples\tmean_quality\tlow_quality\tstatus"

// StartSummaryJSONLWriter streams each summary as one JSON line (v1).
func StartSummaryJSONLWriter(out io.Writer, bufSize int) (chan<- api.SummaryV1, <-chan error) {
	return jsonlutil.Start[api.SummaryV1](out, bufSize, nil, IsBrokenPipe)
}

// StartSummaryWriter spins up a writer goroutine for batch summaries in the
// given format (jsonl or tsv).
func StartSummaryWriter(out io.Writer, format string, header bool, bufSize int) (chan<- api.SummaryV1, <-chan error) {
	switch format {
	case output.FormatJSONL, output.FormatJSON:
		return StartSummaryJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.SummaryV1, bufSize)
	errCh := make(chan error, 1)
	go func() {
		var err error
		switch format {
		case output.FormatTSV, output.FormatText:
			err = streamSummaryTSV(out, in, header)
		default:
			err = fmt.Errorf("unknown summary format %q (no writer registered)", format)
		}
		// Drain so senders never block on an early failure.
		for range in {
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}

func streamSummaryTSV(w io.Writer, in <-chan api.SummaryV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, SummaryTSVHeader); err != nil {
			return err
		}
	}
	for s := range in {
		status := "ok"
		switch {
		case s.Error != "":
			status = "error: " + s.Error
		case s.Fallback != "":
			status = "mock: " + s.Fallback
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%d\t%s\n",
			s.FileName, s.FileFormat, s.SequenceLength, s.TraceLength, s.MeanQuality, s.LowQuality, status); err != nil {
			return err
		}
	}
	return nil
}
