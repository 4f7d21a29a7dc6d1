package builder

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packsnap/packsnap/internal/blockcodec"
	"github.com/packsnap/packsnap/internal/format"
	"github.com/packsnap/packsnap/internal/output"
)

type buffer struct {
	bytes.Buffer
	closed bool
}

func (b *buffer) Close() error {
	b.closed = true
	return nil
}

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestBuilderAppendsFilesAndClosesPack(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.txt", "hello\n")
	bFile := writeTempFile(t, dir, "b.txt", "world\n")

	var buf buffer
	sink := output.NopSink{}
	b := New(&buf, blockcodec.LevelFast, DefaultChunkSize, 2, nil, sink)

	require.NoError(t, b.Start())
	require.NoError(t, b.AppendFile(a))
	require.NoError(t, b.AppendFile(bFile))
	require.NoError(t, b.Close())

	assert.True(t, buf.closed)

	data := buf.Bytes()
	require.GreaterOrEqual(t, len(data), format.DataFileHeaderSize+format.DataChunkHeaderSize)

	header, err := format.DecodeDataFileHeader(data[:format.DataFileHeaderSize])
	require.NoError(t, err)
	_ = header

	stats := b.Statistics()
	assert.Equal(t, 2, stats.FileCount)
}

func TestBuilderSkipsMissingFileWithoutFailingTheBuild(t *testing.T) {
	dir := t.TempDir()
	ok := writeTempFile(t, dir, "ok.txt", "fine\n")
	missing := filepath.Join(dir, "does-not-exist.txt")

	var buf buffer
	var errs []string
	sink := &recordingSink{onError: func(msg string) { errs = append(errs, msg) }}
	b := New(&buf, blockcodec.LevelFast, DefaultChunkSize, 0, nil, sink)

	require.NoError(t, b.Start())
	require.NoError(t, b.AppendFile(missing))
	require.NoError(t, b.AppendFile(ok))
	require.NoError(t, b.Close())

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "does-not-exist.txt")

	stats := b.Statistics()
	assert.Equal(t, 1, stats.FileCount)
}

func TestBuilderAppliesTranscoder(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "raw.txt", "RAW")

	var buf buffer
	transcoder := transcoderFunc(func(data []byte) ([]byte, error) {
		return bytes.ToLower(data), nil
	})
	b := New(&buf, blockcodec.LevelFast, DefaultChunkSize, 1, transcoder, output.NopSink{})

	require.NoError(t, b.Start())
	require.NoError(t, b.AppendFile(path))
	require.NoError(t, b.Close())

	// The chunk payload is compressed, so the transcoded contents are
	// checked in the decompressed payload rather than in the raw output.
	data := buf.Bytes()
	chunkStart := format.DataFileHeaderSize
	chunkHeader, err := format.DecodeDataChunkHeader(data[chunkStart : chunkStart+format.DataChunkHeaderSize])
	require.NoError(t, err)
	payloadStart := chunkStart + format.DataChunkHeaderSize + int(chunkHeader.ExtraSize) + int(chunkHeader.IndexSize)
	payload, err := blockcodec.Decompress(data[payloadStart:payloadStart+int(chunkHeader.CompressedSize)], int(chunkHeader.UncompressedSize))
	require.NoError(t, err)

	fileHeader := format.DecodeDataChunkFileHeader(payload)
	assert.Equal(t, "raw", string(payload[fileHeader.DataOffset:fileHeader.DataOffset+fileHeader.DataSize]))
	assert.False(t, bytes.Contains(payload, []byte("RAW")))
}

func TestBuilderReportsTranscodeFailureAndSkips(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "bad.txt", "whatever")

	var buf buffer
	var reported bool
	transcoder := transcoderFunc(func(data []byte) ([]byte, error) {
		return nil, errors.New("invalid encoding")
	})
	sink := &recordingSink{onError: func(msg string) { reported = true }}
	b := New(&buf, blockcodec.LevelFast, DefaultChunkSize, 1, transcoder, sink)

	require.NoError(t, b.Start())
	require.NoError(t, b.AppendFile(path))
	require.NoError(t, b.Close())

	assert.True(t, reported)
	assert.Equal(t, 0, b.Statistics().FileCount)
}

type transcoderFunc func([]byte) ([]byte, error)

func (f transcoderFunc) ToUTF8(data []byte) ([]byte, error) { return f(data) }

type recordingSink struct {
	onError func(string)
}

func (s *recordingSink) Print(format string, args ...any) {}
func (s *recordingSink) Error(format string, args ...any) {
	if s.onError != nil {
		s.onError(fmt.Sprintf(format, args...))
	}
}
