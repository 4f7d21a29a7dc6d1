package bloomidx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNgramBitOrder(t *testing.T) {
	got := Ngram(0x01, 0x02, 0x03, 0x04)
	want := uint32(0x01) | uint32(0x02)<<8 | uint32(0x03)<<16 | uint32(0x04)<<24
	assert.Equal(t, want, got)
}

func TestExtractNgramsExcludesNewlines(t *testing.T) {
	data := []byte("ab\ncd")
	ngrams := ExtractNgrams(data)

	// Every 4-byte window here spans the newline, so nothing should be extracted.
	assert.Empty(t, ngrams)
}

func TestExtractNgramsBasic(t *testing.T) {
	data := []byte("abcde")
	ngrams := ExtractNgrams(data)

	assert.Len(t, ngrams, 2) // "abcd" and "bcde"
	assert.Contains(t, ngrams, Ngram('a', 'b', 'c', 'd'))
	assert.Contains(t, ngrams, Ngram('b', 'c', 'd', 'e'))
}

func TestIndexSizeRounding(t *testing.T) {
	assert.Equal(t, 0, IndexSize(1000))    // 1000/50 = 20 < 1024
	assert.Equal(t, 0, IndexSize(51000))   // 1020 < 1024
	assert.Equal(t, 1024, IndexSize(51200)) // exactly 1024
	assert.Equal(t, 2000, IndexSize(100000))
}

func TestHashIterationsClamp(t *testing.T) {
	assert.Equal(t, 1, HashIterations(1024, 0))
	assert.Equal(t, 16, HashIterations(1<<30, 1)) // huge m/n -> clamp high
	assert.Equal(t, 1, HashIterations(1, 1<<20))  // tiny m/n -> clamp low
}

func TestUpdateAndTestMembership(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog\n")
	ngrams := ExtractNgrams(data)
	require := len(ngrams)
	if require == 0 {
		t.Fatal("expected ngrams")
	}

	indexSize := 1024
	iterations := HashIterations(indexSize, len(ngrams))
	index := make([]byte, indexSize)

	for n := range ngrams {
		Update(index, indexSize, n, iterations)
	}

	for n := range ngrams {
		assert.True(t, Test(index, indexSize, n, iterations), "expected membership for inserted ngram")
	}
}

func TestTestOnEmptyIndexIsFalse(t *testing.T) {
	assert.False(t, Test(nil, 0, 12345, 3))
}
