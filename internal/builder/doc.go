// Package builder drives the build process described in spec.md §4.5: it
// opens a pack file for writing, feeds each project file's contents through
// the assembler and packwriter, and recovers from per-file failures (a
// stat, read, or transcode error skips that file and reports it through an
// output.Sink rather than aborting the whole build). A write failure from
// the assembler or the underlying packwriter is not recoverable: it aborts
// the build, leaving the caller to discard the temporary output file.
package builder
