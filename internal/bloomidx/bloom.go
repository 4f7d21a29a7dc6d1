package bloomidx

import "math"

// Ngram packs four consecutive bytes into the 4-gram key used as a Bloom
// filter element. The bit order is fixed by the wire contract: a is the
// low byte, d is the high byte.
func Ngram(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// ExtractNgrams returns the set of distinct 4-grams in data that do not
// contain a newline byte. Ngrams spanning a newline are excluded so the
// index never wastes bits on matches that can't occur within one line.
func ExtractNgrams(data []byte) map[uint32]struct{} {
	ngrams := make(map[uint32]struct{})
	for i := 3; i < len(data); i++ {
		a, b, c, d := data[i-3], data[i-2], data[i-1], data[i]
		if a == '\n' || b == '\n' || c == '\n' || d == '\n' {
			continue
		}
		ngrams[Ngram(a, b, c, d)] = struct{}{}
	}
	return ngrams
}

// IndexSize returns the Bloom index size, in bytes, for a chunk whose
// uncompressed payload is dataSize bytes: compressed chunks are assumed to
// be about 5x smaller than uncompressed, and the index should be about 10%
// of the compressed size, so indexSize = dataSize / 50. Indices smaller than
// 1024 bytes are not worth storing and are rounded down to 0 (no index).
func IndexSize(dataSize int) int {
	indexSize := dataSize / 50
	if indexSize < 1024 {
		return 0
	}
	return indexSize
}

// HashIterations returns the number of independent bit-set operations per
// inserted element, chosen from the classic Bloom filter optimum
// k = ln(2) * m/n, clamped to [1, 16]. When there are no elements to insert,
// k is defined as 1 to avoid a division by zero.
func HashIterations(indexSize, ngramCount int) int {
	if ngramCount == 0 {
		return 1
	}
	m := float64(indexSize) * 8
	n := float64(ngramCount)
	k := math.Round(0.693147181 * m / n)
	switch {
	case k < 1:
		return 1
	case k > 16:
		return 16
	default:
		return int(k)
	}
}

// Update sets `iterations` bits in data[0:indexSize], deterministically
// derived from key. This bit-selection function and Test's must always
// agree — it is the query engine's read-side contract, not an
// implementation detail.
func Update(data []byte, indexSize int, key uint32, iterations int) {
	totalBits := uint64(indexSize) * 8
	if totalBits == 0 {
		return
	}
	for i := 0; i < iterations; i++ {
		bit := bitIndex(key, i, totalBits)
		data[bit/8] |= 1 << (bit % 8)
	}
}

// Test reports whether every one of the `iterations` bits key would set is
// already set in data[0:indexSize]. A false result proves the 4-gram was
// never inserted; a true result may be a false positive, as with any Bloom
// filter.
func Test(data []byte, indexSize int, key uint32, iterations int) bool {
	totalBits := uint64(indexSize) * 8
	if totalBits == 0 {
		return false
	}
	for i := 0; i < iterations; i++ {
		bit := bitIndex(key, i, totalBits)
		if data[bit/8]&(1<<(bit%8)) == 0 {
			return false
		}
	}
	return true
}

// bitIndex derives the i-th independent bit position for key within a
// totalBits-wide filter using a splitmix64-style avalanche mix so that
// successive iterations scatter widely even for keys differing by one bit.
func bitIndex(key uint32, i int, totalBits uint64) uint64 {
	h := uint64(key)*0x9E3779B97F4A7C15 + uint64(i+1)*0xBF58476D1CE4E5B9
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return h % totalBits
}
