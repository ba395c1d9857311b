package api

// ChromatogramV1 is the stable JSON schema for a decoded record.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ChromatogramV1 struct {
	FileName       string               `json:"file_name"`
	FileFormat     string               `json:"file_format"` // "AB1" | "SCF" | "MOCK"
	SequenceLength int                  `json:"sequence_length"`
	Sequence       string               `json:"sequence"`
	BaseCalls      []string             `json:"base_calls"`
	Quality        []int                `json:"quality"`
	PeakLocations  []int                `json:"peak_locations"`
	Traces         map[string][]float64 `json:"traces"` // keys "A","T","G","C"

	QualitySynthesized bool   `json:"quality_synthesized,omitempty"`
	Version            string `json:"version,omitempty"`
	SampleName         string `json:"sample_name,omitempty"`
	Fallback           string `json:"fallback_reason,omitempty"` // decoder error when mock data was substituted
}

// SummaryV1 is one line of batch (JSONL) output.
type SummaryV1 struct {
	FileName       string  `json:"file_name"`
	FileFormat     string  `json:"file_format"`
	SequenceLength int     `json:"sequence_length"`
	TraceLength    int     `json:"trace_length"`
	MeanQuality    float64 `json:"mean_quality"`
	LowQuality     int     `json:"low_quality_bases"`
	Fallback       string  `json:"fallback_reason,omitempty"`
	Error          string  `json:"error,omitempty"`
}
