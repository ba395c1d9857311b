// Package appcore runs the batch flow shared by every multi-file command:
// pipeline → visitor → writer, with one place mapping failures to exit codes.
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"gopkg.in/cheggaaa/pb.v1"

	"chromaview/internal/cmdutil"
	"chromaview/internal/pipeline"
	"chromaview/internal/writers"
)

type Options struct {
	Files   []string
	Threads int

	Progress bool // progress bar on stderr
	Quiet    bool
}

type VisitorFunc[T any] func(pipeline.Outcome) (keep bool, out T, err error)

type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Run decodes o.Files and streams one visited value per file. Per-file
// failures stay in the stream; any of them makes the exit code 3 once the
// stream is complete.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	newDecoder func(i int) pipeline.Decoder,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	outw := bufio.NewWriter(stdout)

	if len(o.Files) == 0 {
		fmt.Fprintln(stderr, "error: no input files")
		return 2
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	var bar *pb.ProgressBar
	if o.Progress && !o.Quiet {
		bar = pb.New(len(o.Files))
		bar.Output = stderr
		bar.Start()
	}

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	failed := 0
	_, perr := cmdutil.RunStream[T](
		ctx,
		pipeline.Config{Threads: thr},
		o.Files,
		newDecoder,
		func(oc pipeline.Outcome) (bool, T, error) {
			if bar != nil {
				bar.Increment()
			}
			if oc.Err != nil {
				failed++
			}
			return visit(oc)
		},
		func(x T) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)
	if bar != nil {
		bar.Finish()
	}

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	if failed > 0 {
		if !o.Quiet {
			fmt.Fprintf(stderr, "error: %d of %d files failed\n", failed, len(o.Files))
		}
		return 3
	}
	return 0
}
