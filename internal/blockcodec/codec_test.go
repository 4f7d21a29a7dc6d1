package blockcodec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	src := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 100))

	compressed, err := Compress(src, LevelBest)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(src))

	decompressed, err := Decompress(compressed, len(src))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(src, decompressed))
}

func TestDecompressPartialPrefix(t *testing.T) {
	src := []byte(strings.Repeat("0123456789", 1000))

	compressed, err := Compress(src, LevelFast)
	require.NoError(t, err)

	prefix, err := DecompressPartial(compressed, len(src), 37)
	require.NoError(t, err)
	assert.Equal(t, src[:37], prefix)
}

func TestDecompressPartialFullWhenPrefixExceedsSize(t *testing.T) {
	src := []byte("hello world")

	compressed, err := Compress(src, LevelBest)
	require.NoError(t, err)

	full, err := DecompressPartial(compressed, len(src), 1000)
	require.NoError(t, err)
	assert.Equal(t, src, full)
}
