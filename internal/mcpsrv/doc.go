// Package mcpsrv exposes packsnap's build status and live change list as
// MCP tools over stdio (spec.md's Non-goals exclude search; this package
// answers "what changed" and "is the pack current", nothing else).
package mcpsrv
