// Package cli is the process driver (spec.md §4.9): it composes
// project, builder, packreader, packcache, tracker, and watchsup into
// the build and watch operations, and owns the temp-path-then-rename
// convention for every file the process produces directly (the pack
// itself; the change-list sidecar's own rename lives in the tracker
// package, which needs it for its own mid-loop persistence).
package cli
