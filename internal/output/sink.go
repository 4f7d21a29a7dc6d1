package output

import (
	"fmt"
	"io"
)

// Sink receives progress and error reports from long-running operations.
// Print is for transient, overwritable status; Error is for durable
// diagnostics that should remain visible in scrollback.
type Sink interface {
	Print(format string, args ...any)
	Error(format string, args ...any)
}

// StdSink writes progress to out with a leading carriage return, so
// successive calls overwrite the previous line on a terminal, and writes
// errors to err on their own line.
type StdSink struct {
	out io.Writer
	err io.Writer
}

// NewStdSink creates a StdSink writing progress to out and errors to err.
func NewStdSink(out, err io.Writer) *StdSink {
	return &StdSink{out: out, err: err}
}

func (s *StdSink) Print(format string, args ...any) {
	fmt.Fprintf(s.out, "\r"+format, args...)
}

func (s *StdSink) Error(format string, args ...any) {
	fmt.Fprintf(s.err, format+"\n", args...)
}

// NopSink discards everything. Useful in tests and as a default when no
// caller-supplied Sink is given.
type NopSink struct{}

func (NopSink) Print(format string, args ...any) {}
func (NopSink) Error(format string, args ...any) {}
