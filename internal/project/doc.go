// Package project implements the external project-parser collaborator
// spec.md §6 names: parsing a project's `.packsnap.json` descriptor into a
// tree of watched roots and acceptance predicates (Group), and enumerating
// every acceptable file under that tree as a sorted list of
// types.FileInfo. Configuration follows a raw-then-effective two-stage
// pattern: FileConfig is exactly what's on disk, and Group is its effective
// form, normalized and ready for consumption with no further default
// resolution needed by callers.
package project
