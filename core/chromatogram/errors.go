package chromatogram

import "errors"

// Detector errors.
var (
	ErrTooSmall      = errors.New("buffer too small")
	ErrUnknownFormat = errors.New("unknown trace format")
)

// Parser errors. Decoders wrap these with context; test with errors.Is.
var (
	ErrMalformedContainer    = errors.New("malformed container")
	ErrNoTraceData           = errors.New("no trace data")
	ErrNoBaseCalls           = errors.New("no base calls")
	ErrUnsupportedSampleSize = errors.New("unsupported sample size")
	ErrInvalidHeader         = errors.New("invalid header")
)

// ErrInvariant is returned by Record.Validate.
var ErrInvariant = errors.New("record invariant violated")
