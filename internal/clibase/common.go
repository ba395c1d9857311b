package clibase

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Common holds the persistent flags every chromaview command shares.
type Common struct {
	ConfigFile string
	Strict     bool
	LogLevel   string
	Quiet      bool
	Examples   bool
	Seed       uint64
}

// Register wires the shared flags onto fs (the root's persistent set).
func Register(fs *pflag.FlagSet, c *Common) {
	fs.StringVar(&c.ConfigFile, "config", "", "config file (default ./chromaview.yaml if present)")
	fs.BoolVar(&c.Strict, "strict", false, "fail on undecodable input instead of substituting mock data")
	fs.StringVar(&c.LogLevel, "log-level", "warn", "log level: debug | info | warn | error")
	fs.BoolVarP(&c.Quiet, "quiet", "q", false, "suppress non-essential warnings")
	fs.BoolVar(&c.Examples, "examples", false, "print usage examples and exit")
	fs.Uint64Var(&c.Seed, "seed", 0, "seed for synthetic data (0 = time based)")
}

// Validate applies shared CLI invariants used by all commands.
func Validate(c *Common) error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid --log-level %q", c.LogLevel)
	}
	return nil
}

// UsageError marks a bad invocation (exit code 2).
type UsageError struct{ Err error }

func (e UsageError) Error() string { return e.Err.Error() }
func (e UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError.
func Usagef(format string, a ...any) error {
	return UsageError{Err: fmt.Errorf(format, a...)}
}

// ExitCode carries a non-zero exit status out of a command that already
// reported its own failure.
type ExitCode int

func (c ExitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

// RuntimeError marks a failure while running a command (exit code 3).
type RuntimeError struct{ Err error }

func (e RuntimeError) Error() string { return e.Err.Error() }
func (e RuntimeError) Unwrap() error { return e.Err }
