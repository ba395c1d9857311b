package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chromaview/core/chromatogram"
	"chromaview/core/viewport"
	"chromaview/internal/output"
)

// InspectOptions are the flags of `inspect`.
type InspectOptions struct {
	Output    string // text | json | fasta | tsv
	Header    bool   // true unless --no-header
	LineWidth int
}

// ExportOptions are the flags of `export`.
type ExportOptions struct {
	Range     string // "a-b", 1-based inclusive; empty = whole sequence
	LineWidth int
}

// ViewOptions are the flags of `view`. Pixel flags are optional; Has*
// reports whether they were given.
type ViewOptions struct {
	Zoom     float64
	Scroll   float64
	Center   int // sample to centre on; -1 = use Scroll
	Select   int // base index; -1 = none
	Click    float64
	HasClick bool
	Hover    float64
	HasHover bool
	Edit     string
	Range    string
	Channels string // subset of "ACGT"; empty = all
	Output   string // json | fasta (highlighted range)
}

// BatchOptions are the flags of `batch`.
type BatchOptions struct {
	Threads  int
	Progress bool
	Output   string // jsonl | tsv
	Header   bool
	SkipMock bool
}

// ParseRange parses "a-b" into a 1-based inclusive range.
func ParseRange(s string) (viewport.Range, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return viewport.Range{}, fmt.Errorf("range %q: want START-END", s)
	}
	start, err1 := strconv.Atoi(a)
	end, err2 := strconv.Atoi(b)
	if err := errors.Join(err1, err2); err != nil {
		return viewport.Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	if start < 1 || end < start {
		return viewport.Range{}, fmt.Errorf("range %q: want 1 <= START <= END", s)
	}
	return viewport.Range{Start: start, End: end}, nil
}

// ParseChannels parses a channel list such as "AG" or "a,c".
func ParseChannels(s string) ([]chromatogram.Channel, error) {
	var out []chromatogram.Channel
	seen := map[chromatogram.Channel]bool{}
	for _, r := range strings.ToUpper(s) {
		if r == ',' || r == ' ' {
			continue
		}
		if r > 0x7f {
			return nil, fmt.Errorf("channels %q: %q is not one of A, C, G, T", s, r)
		}
		ch, ok := chromatogram.ParseChannel(byte(r))
		if !ok {
			return nil, fmt.Errorf("channels %q: %q is not one of A, C, G, T", s, r)
		}
		if !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("channels %q: empty", s)
	}
	return out, nil
}

func (o *InspectOptions) Validate() error {
	switch o.Output {
	case output.FormatText, output.FormatJSON, output.FormatFASTA, output.FormatTSV:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.LineWidth < 0 {
		return errors.New("--line-width must be >= 0")
	}
	return nil
}

func (o *ExportOptions) Validate() error {
	if o.Range != "" {
		if _, err := ParseRange(o.Range); err != nil {
			return err
		}
	}
	if o.LineWidth < 0 {
		return errors.New("--width must be >= 0")
	}
	return nil
}

func (o *ViewOptions) Validate() error {
	if o.Zoom < viewport.MinZoom || o.Zoom > viewport.MaxZoom {
		return fmt.Errorf("--zoom must be in [%g,%g]", viewport.MinZoom, float64(viewport.MaxZoom))
	}
	if o.Scroll < 0 || o.Scroll > 1 {
		return errors.New("--scroll must be in [0,1]")
	}
	if o.HasClick && o.Select >= 0 {
		return errors.New("--select conflicts with --click")
	}
	if o.Edit != "" && len(o.Edit) != 1 {
		return fmt.Errorf("--edit takes one base symbol, got %q", o.Edit)
	}
	if o.Edit != "" && o.Select < 0 && !o.HasClick {
		return errors.New("--edit needs a selection (--select or --click)")
	}
	if o.Range != "" {
		if _, err := ParseRange(o.Range); err != nil {
			return err
		}
	}
	if o.Channels != "" {
		if _, err := ParseChannels(o.Channels); err != nil {
			return err
		}
	}
	switch o.Output {
	case output.FormatJSON:
	case output.FormatFASTA:
		if o.Range == "" {
			return errors.New("-o fasta needs --range")
		}
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	return nil
}

func (o *BatchOptions) Validate() error {
	if o.Threads < 0 {
		return errors.New("--threads must be >= 0")
	}
	switch o.Output {
	case output.FormatJSONL, output.FormatTSV:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	return nil
}
