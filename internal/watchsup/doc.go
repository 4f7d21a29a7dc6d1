// Package watchsup implements the watch supervisor (spec.md §4.8): one
// goroutine per watched root, recursing through a project.Group's
// children, each blocked inside the directory-watch primitive
// (DirWatcher) until it can no longer continue. It also ships the one
// concrete DirWatcher the retrieved corpus offers no library for: a
// stdlib polling implementation.
package watchsup
