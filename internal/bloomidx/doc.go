// Package bloomidx builds the per-chunk 4-gram Bloom index packsnap embeds
// next to each chunk's compressed payload so a downstream query engine can
// skip chunks that cannot possibly contain a given substring.
//
// The bit-selection function in Update/Test is part of the on-disk wire
// contract (spec.md §4.2): a query engine reading the index back must
// derive the same bit positions from the same 4-gram key, so the mixing
// scheme here is fixed and must never change without a format version bump.
package bloomidx
