package builder

import (
	"fmt"
	"io"
	"os"

	"github.com/packsnap/packsnap/internal/assembler"
	"github.com/packsnap/packsnap/internal/blockcodec"
	"github.com/packsnap/packsnap/internal/output"
	"github.com/packsnap/packsnap/internal/packwriter"
)

// DefaultChunkSize is the target uncompressed size of each chunk, matching
// the original implementation's default.
const DefaultChunkSize = 512 * 1024

// Transcoder converts a file's raw bytes to UTF-8. The default
// IdentityTranscoder assumes project files are already UTF-8 and passes
// them through unchanged; a caller working with a project that stores
// files in another encoding supplies its own implementation.
type Transcoder interface {
	ToUTF8(data []byte) ([]byte, error)
}

// IdentityTranscoder returns its input unchanged.
type IdentityTranscoder struct{}

// ToUTF8 implements Transcoder.
func (IdentityTranscoder) ToUTF8(data []byte) ([]byte, error) {
	return data, nil
}

// Builder assembles a project's files into a pack file, one AppendFile call
// per file, in the caller's chosen order.
type Builder struct {
	out        io.WriteCloser
	writer     *packwriter.Writer
	asm        *assembler.Assembler
	transcoder Transcoder
	sink       output.Sink

	totalFiles     int
	lastResultSize uint64
}

// New creates a Builder that writes a finished pack to out, compressing at
// level and targeting chunkSize bytes per chunk. totalFiles is the expected
// number of files to be appended, used only to compute a progress
// percentage; passing 0 disables the percentage (only counts are shown).
func New(out io.WriteCloser, level blockcodec.Level, chunkSize int, totalFiles int, transcoder Transcoder, sink output.Sink) *Builder {
	if transcoder == nil {
		transcoder = IdentityTranscoder{}
	}
	if sink == nil {
		sink = output.NopSink{}
	}

	b := &Builder{
		out:        out,
		writer:     packwriter.New(out, level),
		transcoder: transcoder,
		sink:       sink,
		totalFiles: totalFiles,
	}
	b.asm = assembler.New(chunkSize, b.writer.WriteChunk)
	return b
}

// Start writes the pack's data-file header. Must be called before any
// AppendFile call.
func (b *Builder) Start() error {
	return b.writer.WriteHeader()
}

// Statistics returns the cumulative totals written so far.
func (b *Builder) Statistics() packwriter.Statistics {
	return b.writer.Statistics()
}

// AppendFile stats, reads, and transcodes path, then appends its contents
// to the pack under path as its entry name. It is equivalent to calling
// AppendFileAs(path, path), for callers where the filesystem path doubles
// as the name recorded in the pack.
func (b *Builder) AppendFile(path string) error {
	return b.AppendFileAs(path, path)
}

// AppendFileAs stats and reads diskPath, transcodes its contents, then
// appends them to the pack under entryName (the project-relative,
// normalized name recorded in the file table) rather than diskPath
// itself. A stat, read, or transcode failure is reported through the Sink
// and the file is skipped without returning an error: the build
// continues. An assembler or packwriter failure is fatal and is returned,
// since it means the pack file itself could not be written correctly.
func (b *Builder) AppendFileAs(diskPath, entryName string) error {
	info, err := os.Stat(diskPath)
	if err != nil {
		b.sink.Error("skipping %s: %v", diskPath, err)
		return nil
	}

	raw, err := os.ReadFile(diskPath)
	if err != nil {
		b.sink.Error("skipping %s: %v", diskPath, err)
		return nil
	}

	contents, err := b.transcoder.ToUTF8(raw)
	if err != nil {
		b.sink.Error("skipping %s: %v", diskPath, err)
		return nil
	}

	timeStamp := uint64(info.ModTime().Unix())
	fileSize := uint64(info.Size())

	if err := b.asm.AppendFilePart(entryName, 0, contents, timeStamp, fileSize); err != nil {
		return fmt.Errorf("appending %s: %w", diskPath, err)
	}

	b.printProgress()
	return nil
}

// Close flushes any pending chunk and closes the underlying writer. It must
// be called exactly once, after the last AppendFile call.
func (b *Builder) Close() error {
	if err := b.asm.Flush(); err != nil {
		return fmt.Errorf("flushing final chunk: %w", err)
	}
	if err := b.out.Close(); err != nil {
		return fmt.Errorf("closing pack file: %w", err)
	}

	stats := b.writer.Statistics()
	b.sink.Print("[100%%] %d files, %d KB in, %d KB out\n", stats.FileCount, stats.FileSize/1024, stats.ResultSize/1024)
	return nil
}

// printProgress reports progress at most once per distinct cumulative
// result size, so a run of tiny files sharing a chunk doesn't spam the
// sink between chunk flushes.
func (b *Builder) printProgress() {
	stats := b.writer.Statistics()
	if stats.ResultSize == b.lastResultSize {
		return
	}
	b.lastResultSize = stats.ResultSize

	if b.totalFiles > 0 {
		percent := stats.FileCount * 100 / b.totalFiles
		b.sink.Print("[%3d%%] %d files, %d KB in, %d KB out", percent, stats.FileCount, stats.FileSize/1024, stats.ResultSize/1024)
		return
	}
	b.sink.Print("%d files, %d KB in, %d KB out", stats.FileCount, stats.FileSize/1024, stats.ResultSize/1024)
}
