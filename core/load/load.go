// Package load turns a raw buffer into a Record: detect the container, run
// its decoder, and apply the fallback policy on failure.
package load

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"chromaview/core/abif"
	"chromaview/core/chromatogram"
	"chromaview/core/detect"
	"chromaview/core/mock"
	"chromaview/core/scf"
)

// MinSize is the smallest buffer worth handing to a decoder.
const MinSize = 100

// Policy decides what happens when a buffer cannot be decoded.
type Policy int

const (
	// FallbackMock logs the failure and returns a synthetic record, so a
	// viewer always has something to display.
	FallbackMock Policy = iota
	// Strict returns the decoder error.
	Strict
)

// ParsePolicy maps "mock" or "strict" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "mock":
		return FallbackMock, nil
	case "strict":
		return Strict, nil
	}
	return 0, fmt.Errorf("unknown policy %q (want mock or strict)", s)
}

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "mock"
}

// Loader holds decoder options and the fallback policy.
type Loader struct {
	Policy Policy
	ABIF   abif.Options
	SCF    scf.Options
	Mock   mock.Options

	rnd *rand.Rand
	log *log.Logger
}

// New returns a Loader. A nil logger discards output; a nil rnd uses a
// fixed seed.
func New(policy Policy, rnd *rand.Rand, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(1, 2))
	}
	l := &Loader{Policy: policy, Mock: mock.DefaultOptions, rnd: rnd, log: logger}
	l.ABIF.Rand, l.ABIF.Logger = rnd, logger
	l.SCF.Logger = logger
	return l
}

// Result is the outcome of Load.
type Result struct {
	Record *chromatogram.Record
	// Err is the decoder error that triggered a fallback, nil on success.
	Err error
}

// Fallback reports whether Record is synthetic because decoding failed.
func (r Result) Fallback() bool { return r.Err != nil }

// Parse detects and decodes buf without any fallback.
func (l *Loader) Parse(buf []byte, name string) (*chromatogram.Record, error) {
	format, err := detect.Detect(buf)
	if err != nil {
		return nil, err
	}
	switch format {
	case chromatogram.FormatAB1:
		return abif.Parse(buf, name, l.ABIF)
	case chromatogram.FormatSCF:
		return scf.Parse(buf, name, l.SCF)
	}
	return nil, fmt.Errorf("load: %s: %w", format, chromatogram.ErrUnknownFormat)
}

// Load decodes buf under the loader's policy. Under Strict the error is
// returned; under FallbackMock the error is logged, carried in Result.Err,
// and the record is synthetic.
func (l *Loader) Load(buf []byte, name string) (Result, error) {
	var (
		rec *chromatogram.Record
		err error
	)
	if len(buf) < MinSize {
		err = fmt.Errorf("load %s: %d bytes, need %d: %w", name, len(buf), MinSize, chromatogram.ErrTooSmall)
	} else {
		rec, err = l.Parse(buf, name)
	}
	if err == nil {
		return Result{Record: rec}, nil
	}
	if l.Policy == Strict {
		return Result{}, err
	}
	l.log.Warn("decode failed, substituting mock data", "file", name, "err", err)
	return Result{Record: mock.GenerateWith(name, l.rnd, l.Mock), Err: err}, nil
}
