// Package visitors maps pipeline outcomes to the values a writer streams.
package visitors

import (
	"chromaview/internal/output"
	"chromaview/internal/pipeline"
	"chromaview/pkg/api"
)

// Summary turns each outcome into one SummaryV1 line.
type Summary struct {
	QualityThreshold int
	SkipFallback     bool // drop files that were replaced by mock data
}

func (v Summary) Visit(o pipeline.Outcome) (bool, api.SummaryV1, error) {
	if o.Err != nil {
		return true, api.SummaryV1{FileName: o.File, Error: o.Err.Error()}, nil
	}
	if v.SkipFallback && o.Result.Fallback() {
		return false, api.SummaryV1{}, nil
	}
	return true, output.Summarize(o.Result.Record, v.QualityThreshold, o.Result.Err), nil
}
