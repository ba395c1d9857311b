package chromatogram

import "fmt"

// Format identifies where a Record came from.
type Format string

const (
	FormatAB1  Format = "AB1"
	FormatSCF  Format = "SCF"
	FormatMock Format = "MOCK"
)

// Channel is one of the four dye channels, keyed by nucleotide.
type Channel byte

const (
	A Channel = 'A'
	C Channel = 'C'
	G Channel = 'G'
	T Channel = 'T'
)

// Channels lists the channel keys in display order.
var Channels = [4]Channel{A, T, G, C}

func (c Channel) String() string { return string(rune(c)) }

// ParseChannel maps a nucleotide letter (either case) to its channel.
func ParseChannel(b byte) (Channel, bool) {
	switch b {
	case 'A', 'a':
		return A, true
	case 'C', 'c':
		return C, true
	case 'G', 'g':
		return G, true
	case 'T', 't':
		return T, true
	}
	return 0, false
}

// Sentinels used when a single base cannot be decoded.
const (
	UnknownBase     byte = 'N'
	FallbackQuality      = 20
	MaxQuality           = 60
)

// IsBaseSymbol reports whether b is an accepted base call (A, T, G, C or N).
func IsBaseSymbol(b byte) bool {
	switch b {
	case 'A', 'T', 'G', 'C', 'N':
		return true
	}
	return false
}

// Record is a decoded chromatogram.
//
// Traces, Quality and PeakLocations are never mutated after construction, so
// derived records may share them.
type Record struct {
	Sequence       string
	Traces         map[Channel][]float64
	Quality        []int
	BaseCalls      []byte
	PeakLocations  []int
	FileName       string
	SequenceLength int
	FileFormat     Format

	QualitySynthesized bool   // quality was fabricated because the file had none
	Version            string // SCF version bytes, when known
	SampleName         string // ABIF SMPL1, when present
}

// New assembles a Record from per-base arrays, deriving Sequence and
// SequenceLength from calls.
func New(name string, format Format, traces map[Channel][]float64, calls []byte, quality, peaks []int) *Record {
	if traces == nil {
		traces = map[Channel][]float64{}
	}
	return &Record{
		Sequence:       string(calls),
		Traces:         traces,
		Quality:        quality,
		BaseCalls:      calls,
		PeakLocations:  peaks,
		FileName:       name,
		SequenceLength: len(calls),
		FileFormat:     format,
	}
}

// MaxTraceLength is the longest channel length.
func (r *Record) MaxTraceLength() int {
	return MaxLen(r.Traces)
}

// MaxLen returns the longest slice length in traces.
func MaxLen(traces map[Channel][]float64) int {
	n := 0
	for _, s := range traces {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}

// HasTraceData reports whether any channel holds samples.
func HasTraceData(traces map[Channel][]float64) bool {
	return MaxLen(traces) > 0
}

// WithBaseCall returns a copy of r whose base call at i is sym, with Sequence
// rebuilt. Quality, peaks and traces are shared with r.
func (r *Record) WithBaseCall(i int, sym byte) (*Record, error) {
	if i < 0 || i >= len(r.BaseCalls) {
		return nil, fmt.Errorf("base %d out of range [0,%d)", i, len(r.BaseCalls))
	}
	if !IsBaseSymbol(sym) {
		return nil, fmt.Errorf("invalid base symbol %q", sym)
	}
	out := *r
	out.BaseCalls = append([]byte(nil), r.BaseCalls...)
	out.BaseCalls[i] = sym
	out.Sequence = string(out.BaseCalls)
	return &out, nil
}

// Subsequence returns bases start..end, 1-based inclusive.
func (r *Record) Subsequence(start, end int) (string, error) {
	if start < 1 || start > end || end > r.SequenceLength {
		return "", fmt.Errorf("range %d-%d outside 1-%d", start, end, r.SequenceLength)
	}
	return r.Sequence[start-1 : end], nil
}

// FASTA renders the whole sequence as ">{FileName}\n{Sequence}".
func (r *Record) FASTA() string {
	return ">" + r.FileName + "\n" + r.Sequence
}

// Validate checks the length, symbol and peak-range invariants.
func (r *Record) Validate() error {
	n := r.SequenceLength
	switch {
	case len(r.BaseCalls) != n:
		return fmt.Errorf("%w: %d base calls for length %d", ErrInvariant, len(r.BaseCalls), n)
	case len(r.Quality) != n:
		return fmt.Errorf("%w: %d quality values for length %d", ErrInvariant, len(r.Quality), n)
	case len(r.PeakLocations) != n:
		return fmt.Errorf("%w: %d peaks for length %d", ErrInvariant, len(r.PeakLocations), n)
	case r.Sequence != string(r.BaseCalls):
		return fmt.Errorf("%w: sequence does not match base calls", ErrInvariant)
	}
	maxLen := r.MaxTraceLength()
	for i, b := range r.BaseCalls {
		if !IsBaseSymbol(b) {
			return fmt.Errorf("%w: base %d is %q", ErrInvariant, i, b)
		}
		if p := r.PeakLocations[i]; p < 0 || p > maxLen {
			return fmt.Errorf("%w: peak %d at %d outside [0,%d]", ErrInvariant, i, p, maxLen)
		}
		if q := r.Quality[i]; q < 0 || q > MaxQuality {
			return fmt.Errorf("%w: quality %d is %d", ErrInvariant, i, q)
		}
	}
	return nil
}

// FilterBases uppercases raw symbols and drops anything outside A/T/G/C/N.
func FilterBases(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		if IsBaseSymbol(b) {
			out = append(out, b)
		}
	}
	return out
}

// InterpolatedPeak spreads n bases evenly across traceLen samples.
func InterpolatedPeak(i, n, traceLen int) int {
	if n <= 0 {
		return 0
	}
	return i * traceLen / n
}

// String is a short human summary.
func (r *Record) String() string {
	return fmt.Sprintf("%s [%s] %d bases, %d samples", r.FileName, r.FileFormat, r.SequenceLength, r.MaxTraceLength())
}
