package output

import (
	"gonum.org/v1/gonum/stat"

	"chromaview/core/chromatogram"
	"chromaview/pkg/api"
)

// Summarize condenses a record to one SummaryV1 line.
func Summarize(r *chromatogram.Record, threshold int, fallback error) api.SummaryV1 {
	s := api.SummaryV1{
		FileName:       r.FileName,
		FileFormat:     string(r.FileFormat),
		SequenceLength: r.SequenceLength,
		TraceLength:    r.MaxTraceLength(),
		MeanQuality:    MeanQuality(r),
		LowQuality:     LowQualityCount(r, threshold),
	}
	if fallback != nil {
		s.Fallback = fallback.Error()
	}
	return s
}

// MeanQuality is the average quality score, 0 for an empty record.
func MeanQuality(r *chromatogram.Record) float64 {
	if len(r.Quality) == 0 {
		return 0
	}
	q := make([]float64, len(r.Quality))
	for i, v := range r.Quality {
		q[i] = float64(v)
	}
	return stat.Mean(q, nil)
}

// LowQualityCount counts bases scoring below threshold.
func LowQualityCount(r *chromatogram.Record, threshold int) int {
	n := 0
	for _, q := range r.Quality {
		if q < threshold {
			n++
		}
	}
	return n
}
