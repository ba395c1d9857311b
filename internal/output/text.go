package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chromaview/core/chromatogram"
)

// WriteText prints a styled summary followed by the wrapped sequence, with
// bases below threshold rendered in the low-quality style. Styling degrades
// to plain text when w is not a terminal.
func WriteText(w io.Writer, r *chromatogram.Record, threshold int, fallback error) error {
	re := lipgloss.NewRenderer(w)
	var (
		key  = re.NewStyle().Bold(true).Width(14)
		warn = re.NewStyle().Foreground(lipgloss.Color("3"))
		low  = re.NewStyle().Foreground(lipgloss.Color("9"))
	)

	var b strings.Builder
	row := func(k, v string) { b.WriteString(key.Render(k) + v + "\n") }
	row("file", r.FileName)
	row("format", string(r.FileFormat))
	if r.Version != "" {
		row("version", r.Version)
	}
	if r.SampleName != "" {
		row("sample", r.SampleName)
	}
	row("bases", fmt.Sprint(r.SequenceLength))
	row("samples", fmt.Sprint(r.MaxTraceLength()))
	row("mean quality", fmt.Sprintf("%.1f", MeanQuality(r)))
	row("low quality", fmt.Sprintf("%d (< %d)", LowQualityCount(r, threshold), threshold))
	if r.QualitySynthesized {
		row("", warn.Render("quality values are synthetic"))
	}
	if fallback != nil {
		row("fallback", warn.Render(fallback.Error()))
	}
	b.WriteString("\n")

	for i, c := range r.BaseCalls {
		s := string(c)
		if r.Quality[i] < threshold {
			s = low.Render(s)
		}
		b.WriteString(s)
		if (i+1)%DefaultLineWidth == 0 || i == len(r.BaseCalls)-1 {
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
