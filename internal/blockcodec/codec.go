package blockcodec

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
)

// Level selects a compression/ratio tradeoff. The builder driver always
// compresses with LevelBest, matching the original implementation's bias
// toward ratio over build-time speed (it always used LZ4_compressHC, the
// slow high-ratio variant, never the fast one).
type Level int

const (
	LevelFast Level = flate.BestSpeed
	LevelBest Level = flate.BestCompression
)

// Compress returns the compressed form of src at the given level.
func Compress(src []byte, level Level) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, int(level))
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("compressing block: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing compressor: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress fully inflates src, which must decode to exactly
// uncompressedSize bytes.
func Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	return DecompressPartial(src, uncompressedSize)
}

// DecompressPartial inflates only the first wantPrefix bytes of the
// uncompressed stream encoded in src, stopping without decoding the rest of
// the block. When wantPrefix is omitted or exceeds uncompressedSize, the
// whole block is decoded. This mirrors the external decompressPartial
// collaborator spec.md §6 names, used by the pack reader to pull just a
// chunk's file table out of a much larger compressed payload.
func DecompressPartial(src []byte, uncompressedSize int, wantPrefix ...int) ([]byte, error) {
	want := uncompressedSize
	if len(wantPrefix) > 0 && wantPrefix[0] >= 0 && wantPrefix[0] < uncompressedSize {
		want = wantPrefix[0]
	}

	r := flate.NewReader(bytes.NewReader(src))
	defer func() { _ = r.Close() }()

	dst := make([]byte, want)
	n, err := io.ReadFull(r, dst)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("decompressing block: %w", err)
	}
	return dst[:n], nil
}
