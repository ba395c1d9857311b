// Package app wires the command tree to its handlers and maps outcomes to
// exit codes: 0 ok, 2 usage, 3 runtime/IO, 130 cancelled.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"chromaview/internal/cli"
	"chromaview/internal/clibase"
	"chromaview/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	root := cli.NewRootCommand(cli.Handlers{
		Detect:  runDetect,
		Inspect: runInspect,
		Export:  runExport,
		View:    runView,
		Batch:   runBatch,
	})
	root.SetArgs(argv)
	root.SetIn(os.Stdin)
	root.SetOut(outw)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)

	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return exitCode(err, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func exitCode(err error, stderr io.Writer) int {
	var (
		ec clibase.ExitCode
		re clibase.RuntimeError
	)
	switch {
	case err == nil, errors.Is(err, clibase.ErrPrintedAndExitOK), writers.IsBrokenPipe(err):
		return 0
	case errors.As(err, &ec):
		return int(ec)
	case errors.Is(err, context.Canceled):
		return 130
	case errors.As(err, &re):
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 3
	}
	// Usage errors, including cobra's own about unknown commands.
	_, _ = fmt.Fprintln(stderr, "error:", err)
	_, _ = fmt.Fprintln(stderr, "Run 'chromaview --help' for usage.")
	return 2
}
