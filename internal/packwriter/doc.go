// Package packwriter implements the chunk serializer (spec.md §4.4): given
// a finished assembler.Chunk, it lays out the uncompressed payload (header
// table, name table, data region), builds the chunk's Bloom index, compresses
// the payload, and writes the chunk header, index, and compressed payload to
// the data-pack file in that order.
package packwriter
