package cmdutil

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the driver's stderr logger. quiet raises the level to
// error whatever level says.
func NewLogger(dst io.Writer, level string, quiet bool) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	if quiet {
		lvl = max(lvl, log.ErrorLevel)
	}
	return log.NewWithOptions(dst, log.Options{
		Level:           lvl,
		Prefix:          "chromaview",
		ReportTimestamp: false,
	}), nil
}

// Warnf logs through l unless quiet is set.
func Warnf(l *log.Logger, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	l.Warnf(format, a...)
}
