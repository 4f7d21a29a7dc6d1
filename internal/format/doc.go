// Package format defines the on-disk layout of a packsnap data pack
// (".qgd" file): the fixed magic header, the per-chunk header, and the
// per-file header embedded in a chunk's uncompressed payload.
//
// All integers are little-endian regardless of host platform. Every
// struct in this package has a fixed, explicit wire width; Encode/Decode
// pairs serialize field-by-field rather than relying on encoding/binary's
// reflection-based Read/Write, so the byte layout can never drift from
// what is documented here.
//
// # Basic usage
//
//	h := NewDataFileHeader()
//	if _, err := w.Write(h.Encode()); err != nil {
//	    return err
//	}
package format
