package packreader

import (
	"fmt"
	"io"

	"github.com/packsnap/packsnap/internal/blockcodec"
	"github.com/packsnap/packsnap/internal/format"
	"github.com/packsnap/packsnap/pkg/types"
)

// ReadFileList streams a pack's chunks from r and returns every whole
// file's name, timestamp, and size, without decompressing or inspecting
// any file's contents. Files are returned in the order their chunks were
// written and are not sorted; callers that need a sorted list (the change
// tracker does) sort the result themselves.
func ReadFileList(r io.Reader) ([]types.FileInfo, error) {
	headerBuf := make([]byte, format.DataFileHeaderSize)
	if _, err := io.ReadFull(r, headerBuf); err != nil {
		return nil, fmt.Errorf("reading data file header: %w", err)
	}
	if _, err := format.DecodeDataFileHeader(headerBuf); err != nil {
		return nil, fmt.Errorf("reading data file header: %w", err)
	}

	var result []types.FileInfo

	chunkHeaderBuf := make([]byte, format.DataChunkHeaderSize)
	for {
		_, err := io.ReadFull(r, chunkHeaderBuf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading chunk header: %w", types.ErrMalformedChunk)
		}

		chunk, err := format.DecodeDataChunkHeader(chunkHeaderBuf)
		if err != nil {
			return nil, fmt.Errorf("decoding chunk header: %w", err)
		}

		files, err := readChunkFileList(r, chunk)
		if err != nil {
			return nil, err
		}
		result = append(result, files...)
	}

	return result, nil
}

func readChunkFileList(r io.Reader, chunk format.DataChunkHeader) ([]types.FileInfo, error) {
	if err := discard(r, int64(chunk.ExtraSize)); err != nil {
		return nil, fmt.Errorf("skipping chunk extra bytes: %w", types.ErrMalformedChunk)
	}
	if err := discard(r, int64(chunk.IndexSize)); err != nil {
		return nil, fmt.Errorf("skipping chunk index: %w", types.ErrMalformedChunk)
	}

	compressed := make([]byte, chunk.CompressedSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("reading chunk payload: %w", types.ErrMalformedChunk)
	}

	if chunk.FileCount == 0 {
		return nil, nil
	}

	headerTableSize := int(chunk.FileCount) * format.DataChunkFileHeaderSize
	uncompressedSize := int(chunk.UncompressedSize)

	headerBytes, err := blockcodec.DecompressPartial(compressed, uncompressedSize, headerTableSize)
	if err != nil || len(headerBytes) < headerTableSize {
		return nil, fmt.Errorf("decompressing chunk file table: %w", types.ErrMalformedChunk)
	}

	fileHeaders := make([]format.DataChunkFileHeader, chunk.FileCount)
	tableEnd := headerTableSize
	for i := range fileHeaders {
		h := format.DecodeDataChunkFileHeader(headerBytes[i*format.DataChunkFileHeaderSize:])
		fileHeaders[i] = h
		if end := int(h.NameOffset + h.NameLength); end > tableEnd {
			tableEnd = end
		}
	}

	tableBytes := headerBytes
	if tableEnd > len(headerBytes) {
		tableBytes, err = blockcodec.DecompressPartial(compressed, uncompressedSize, tableEnd)
		if err != nil || len(tableBytes) < tableEnd {
			return nil, fmt.Errorf("decompressing chunk file names: %w", types.ErrMalformedChunk)
		}
	}

	var result []types.FileInfo
	for _, h := range fileHeaders {
		if h.StartLine != 0 {
			continue
		}
		name := string(tableBytes[h.NameOffset : h.NameOffset+h.NameLength])
		result = append(result, types.FileInfo{
			Path:      name,
			TimeStamp: h.TimeStamp,
			FileSize:  h.FileSize,
		})
	}
	return result, nil
}

func discard(r io.Reader, n int64) error {
	if n == 0 {
		return nil
	}
	copied, err := io.CopyN(io.Discard, r, n)
	if err != nil {
		return err
	}
	if copied != n {
		return io.ErrUnexpectedEOF
	}
	return nil
}
