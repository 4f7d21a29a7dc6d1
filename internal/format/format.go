package format

import (
	"encoding/binary"

	"github.com/packsnap/packsnap/pkg/types"
)

// Magic is the fixed ASCII tag every data-pack file begins with. Readers
// that see anything else must fail with types.ErrBadMagic rather than try
// to interpret the rest of the file.
const Magic = "PSNAPv1\x00"

// MagicSize is the on-disk width of the magic tag, fixed regardless of the
// length of the Magic constant's trailing padding.
const MagicSize = 8

// DataFileHeaderSize is the wire width of DataFileHeader.
const DataFileHeaderSize = MagicSize

// DataFileHeader is the first thing written to a data pack.
type DataFileHeader struct {
	Magic [MagicSize]byte
}

// NewDataFileHeader returns a header stamped with the current magic.
func NewDataFileHeader() DataFileHeader {
	var h DataFileHeader
	copy(h.Magic[:], Magic)
	return h
}

// Encode serializes the header to its fixed-width wire form.
func (h DataFileHeader) Encode() []byte {
	buf := make([]byte, DataFileHeaderSize)
	copy(buf, h.Magic[:])
	return buf
}

// DecodeDataFileHeader parses a header and validates its magic.
func DecodeDataFileHeader(buf []byte) (DataFileHeader, error) {
	var h DataFileHeader
	if len(buf) < DataFileHeaderSize {
		return h, types.ErrBadMagic
	}
	copy(h.Magic[:], buf[:MagicSize])
	if string(h.Magic[:]) != Magic {
		return h, types.ErrBadMagic
	}
	return h, nil
}

// DataChunkHeaderSize is the wire width of DataChunkHeader: six uint32 fields.
const DataChunkHeaderSize = 4 * 6

// DataChunkHeader precedes a chunk's extra bytes, index bytes, and
// compressed payload in write order.
type DataChunkHeader struct {
	FileCount           uint32
	UncompressedSize    uint32
	CompressedSize      uint32
	IndexSize           uint32
	IndexHashIterations uint32
	ExtraSize           uint32
}

// Encode serializes the chunk header to its fixed-width wire form.
func (h DataChunkHeader) Encode() []byte {
	buf := make([]byte, DataChunkHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.FileCount)
	binary.LittleEndian.PutUint32(buf[4:8], h.UncompressedSize)
	binary.LittleEndian.PutUint32(buf[8:12], h.CompressedSize)
	binary.LittleEndian.PutUint32(buf[12:16], h.IndexSize)
	binary.LittleEndian.PutUint32(buf[16:20], h.IndexHashIterations)
	binary.LittleEndian.PutUint32(buf[20:24], h.ExtraSize)
	return buf
}

// DecodeDataChunkHeader parses a chunk header from its fixed-width wire form.
func DecodeDataChunkHeader(buf []byte) (DataChunkHeader, error) {
	var h DataChunkHeader
	if len(buf) < DataChunkHeaderSize {
		return h, types.ErrMalformedChunk
	}
	h.FileCount = binary.LittleEndian.Uint32(buf[0:4])
	h.UncompressedSize = binary.LittleEndian.Uint32(buf[4:8])
	h.CompressedSize = binary.LittleEndian.Uint32(buf[8:12])
	h.IndexSize = binary.LittleEndian.Uint32(buf[12:16])
	h.IndexHashIterations = binary.LittleEndian.Uint32(buf[16:20])
	h.ExtraSize = binary.LittleEndian.Uint32(buf[20:24])
	return h, nil
}

// DataChunkFileHeaderSize is the wire width of DataChunkFileHeader: six
// uint32 fields followed by two uint64 fields.
const DataChunkFileHeaderSize = 4*6 + 8*2

// DataChunkFileHeader describes one file segment inside a chunk's
// uncompressed payload. Offsets are relative to the start of that payload.
type DataChunkFileHeader struct {
	NameOffset uint32
	NameLength uint32
	DataOffset uint32
	DataSize   uint32
	StartLine  uint32
	Reserved   uint32
	FileSize   uint64
	TimeStamp  uint64
}

// Encode serializes the per-file header to its fixed-width wire form.
func (h DataChunkFileHeader) Encode() []byte {
	buf := make([]byte, DataChunkFileHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.NameOffset)
	binary.LittleEndian.PutUint32(buf[4:8], h.NameLength)
	binary.LittleEndian.PutUint32(buf[8:12], h.DataOffset)
	binary.LittleEndian.PutUint32(buf[12:16], h.DataSize)
	binary.LittleEndian.PutUint32(buf[16:20], h.StartLine)
	binary.LittleEndian.PutUint32(buf[20:24], h.Reserved)
	binary.LittleEndian.PutUint64(buf[24:32], h.FileSize)
	binary.LittleEndian.PutUint64(buf[32:40], h.TimeStamp)
	return buf
}

// DecodeDataChunkFileHeader parses a per-file header from its wire form.
func DecodeDataChunkFileHeader(buf []byte) DataChunkFileHeader {
	var h DataChunkFileHeader
	h.NameOffset = binary.LittleEndian.Uint32(buf[0:4])
	h.NameLength = binary.LittleEndian.Uint32(buf[4:8])
	h.DataOffset = binary.LittleEndian.Uint32(buf[8:12])
	h.DataSize = binary.LittleEndian.Uint32(buf[12:16])
	h.StartLine = binary.LittleEndian.Uint32(buf[16:20])
	h.Reserved = binary.LittleEndian.Uint32(buf[20:24])
	h.FileSize = binary.LittleEndian.Uint64(buf[24:32])
	h.TimeStamp = binary.LittleEndian.Uint64(buf[32:40])
	return h
}
