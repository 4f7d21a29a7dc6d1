// Package types holds the small value types shared across packsnap's
// builder and watcher packages: FileInfo (a path/timestamp/size triple used
// for diffing) and the wire-level errors returned when a pack or change
// list cannot be parsed.
package types
