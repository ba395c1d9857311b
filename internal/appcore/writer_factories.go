package appcore

import (
	"io"

	"chromaview/internal/writers"
	"chromaview/pkg/api"
)

// ---------------- Summary writer ----------------

type SummaryWriterFactory struct {
	Format string // jsonl | tsv
	Header bool
}

func NewSummaryWriterFactory(format string, header bool) SummaryWriterFactory {
	return SummaryWriterFactory{Format: format, Header: header}
}

func (w SummaryWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.SummaryV1, <-chan error) {
	return writers.StartSummaryWriter(out, w.Format, w.Header, bufSize)
}
