// Package assembler implements chunk assembly (spec.md §4.3): it accumulates
// file segments submitted by the builder driver into a pending queue and
// decides, byte for byte, where chunk boundaries fall, splitting oversize
// files on newline boundaries so a query engine downstream never has to
// reassemble a line that was cut mid-way across two chunks.
//
// A Segment's Contents is always a slice into the byte slice AppendFilePart
// copied in — splitting a segment just re-slices that same backing array
// with a different offset/length, the Go-native equivalent of the
// arena-plus-offset/length-view scheme spec.md §9 describes. The Go runtime
// keeps the backing array alive for exactly as long as any segment still
// references it, so there is no explicit refcounting to get wrong.
package assembler
