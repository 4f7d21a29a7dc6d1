package packwriter

import (
	"fmt"
	"io"

	"github.com/packsnap/packsnap/internal/assembler"
	"github.com/packsnap/packsnap/internal/blockcodec"
	"github.com/packsnap/packsnap/internal/bloomidx"
	"github.com/packsnap/packsnap/internal/format"
)

// Statistics accumulates totals across every chunk written so far.
type Statistics struct {
	FileCount  int
	FileSize   uint64 // cumulative uncompressed payload bytes
	ResultSize uint64 // cumulative compressed payload bytes
}

// Writer serializes chunks to an underlying stream, in the exact byte order
// a Reader expects: data-file header once, then per chunk a
// DataChunkHeader, its index bytes (if any), and its compressed payload.
type Writer struct {
	out        io.Writer
	level      blockcodec.Level
	statistics Statistics
}

// New creates a Writer that writes to out, compressing chunk payloads at
// the given level.
func New(out io.Writer, level blockcodec.Level) *Writer {
	return &Writer{out: out, level: level}
}

// WriteHeader writes the fixed data-file header. Must be called exactly
// once, before any WriteChunk call.
func (w *Writer) WriteHeader() error {
	h := format.NewDataFileHeader()
	if _, err := w.out.Write(h.Encode()); err != nil {
		return fmt.Errorf("writing data file header: %w", err)
	}
	return nil
}

// Statistics returns the cumulative totals observed so far.
func (w *Writer) Statistics() Statistics {
	return w.statistics
}

// WriteChunk lays out, indexes, compresses, and writes one finished chunk.
// Empty chunks are silently ignored, matching the assembler's flushChunk,
// which emits nothing for an empty chunk.
func (w *Writer) WriteChunk(chunk assembler.Chunk) error {
	if len(chunk.Files) == 0 {
		return nil
	}

	payload := layoutPayload(chunk)
	index, iterations := buildIndex(chunk)

	compressed, err := blockcodec.Compress(payload, w.level)
	if err != nil {
		return fmt.Errorf("compressing chunk: %w", err)
	}

	header := format.DataChunkHeader{
		FileCount:           uint32(len(chunk.Files)),
		UncompressedSize:    uint32(len(payload)),
		CompressedSize:      uint32(len(compressed)),
		IndexSize:           uint32(len(index)),
		IndexHashIterations: uint32(iterations),
		ExtraSize:           0,
	}

	if _, err := w.out.Write(header.Encode()); err != nil {
		return fmt.Errorf("writing chunk header: %w", err)
	}
	if len(index) > 0 {
		if _, err := w.out.Write(index); err != nil {
			return fmt.Errorf("writing chunk index: %w", err)
		}
	}
	if _, err := w.out.Write(compressed); err != nil {
		return fmt.Errorf("writing chunk payload: %w", err)
	}

	w.updateStatistics(chunk, len(payload), len(compressed))
	return nil
}

func (w *Writer) updateStatistics(chunk assembler.Chunk, payloadSize, compressedSize int) {
	for _, f := range chunk.Files {
		if f.StartLine == 0 {
			w.statistics.FileCount++
		}
	}
	w.statistics.FileSize += uint64(payloadSize)
	w.statistics.ResultSize += uint64(compressedSize)
}

// layoutPayload builds [header table | name table | data region], filling
// in each per-file header's offsets as it places that file's name and data.
func layoutPayload(chunk assembler.Chunk) []byte {
	headerSize := format.DataChunkFileHeaderSize * len(chunk.Files)

	nameSize := 0
	for _, f := range chunk.Files {
		nameSize += len(f.Name)
	}

	totalSize := headerSize + nameSize + chunk.TotalSize
	payload := make([]byte, totalSize)

	nameOffset := headerSize
	dataOffset := headerSize + nameSize

	for i, f := range chunk.Files {
		copy(payload[nameOffset:], f.Name)
		copy(payload[dataOffset:], f.Contents)

		h := format.DataChunkFileHeader{
			NameOffset: uint32(nameOffset),
			NameLength: uint32(len(f.Name)),
			DataOffset: uint32(dataOffset),
			DataSize:   uint32(len(f.Contents)),
			StartLine:  f.StartLine,
			Reserved:   0,
			FileSize:   f.FileSize,
			TimeStamp:  f.TimeStamp,
		}
		copy(payload[i*format.DataChunkFileHeaderSize:], h.Encode())

		nameOffset += len(f.Name)
		dataOffset += len(f.Contents)
	}

	return payload
}

// buildIndex extracts the chunk's 4-grams and builds its Bloom index, or
// returns a nil index with zero iterations when the chunk's uncompressed
// data is too small to be worth indexing.
func buildIndex(chunk assembler.Chunk) ([]byte, int) {
	indexSize := bloomidx.IndexSize(chunk.TotalSize)
	if indexSize == 0 {
		return nil, 0
	}

	ngrams := make(map[uint32]struct{})
	for _, f := range chunk.Files {
		for n := range bloomidx.ExtractNgrams(f.Contents) {
			ngrams[n] = struct{}{}
		}
	}

	iterations := bloomidx.HashIterations(indexSize, len(ngrams))
	index := make([]byte, indexSize)
	for n := range ngrams {
		bloomidx.Update(index, indexSize, n, iterations)
	}

	return index, iterations
}
