// Package blockcodec wraps the block-compression routine spec.md §6 treats
// as an external collaborator: Compress and DecompressPartial. No
// third-party compression library appears anywhere in the retrieved
// example corpus, so this wraps the standard library's compress/flate,
// which — unlike a one-shot block codec — exposes an incremental reader,
// letting DecompressPartial stop after exactly the requested prefix
// without inflating the rest of the block.
package blockcodec
