// Package output defines the Sink interface through which the builder,
// tracker, and watch supervisor report progress and errors, and provides a
// StdSink implementation that writes to a pair of io.Writers the way the
// command-line driver does: progress lines overwrite each other with a
// carriage return, error lines are appended normally.
package output
