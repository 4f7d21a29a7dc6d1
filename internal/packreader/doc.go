// Package packreader implements the pack reader's file-list mode (spec.md
// §4.6): given a finished pack file, it streams each chunk header, skips
// the chunk's extra and index bytes, and partially decompresses just
// enough of the chunk's uncompressed payload to recover its file table —
// never the file contents themselves — emitting one types.FileInfo per
// whole file (StartLine == 0) segment.
package packreader
