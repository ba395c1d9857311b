package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK is returned when the caller requested examples.
// Apps should catch this and exit 0 after printing examples.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples prints a small quickstart header and body, followed by a
// one-line tip to discover full help.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s - quickstart\n\n", name)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}

// Examples is the quickstart body for chromaview.
func Examples(out io.Writer) {
	for _, l := range []string{
		"  chromaview detect *.ab1 *.scf",
		"  chromaview inspect run42.ab1",
		"  chromaview inspect -o json run42.ab1 > run42.json",
		"  chromaview export --range 120-180 run42.ab1",
		"  chromaview view --zoom 2 --scroll 0.5 --click 300 --edit G run42.ab1",
		"  chromaview batch --threads 8 --progress 'plates/*.ab1' > summary.jsonl",
		"  chromaview --strict inspect broken.scf   # exit 3 instead of mock data",
	} {
		_, _ = fmt.Fprintln(out, l)
	}
}
