//go:build purego

package packcache

// This file is compiled only with the purego build tag; disabling cgo alone
// still selects build_cgo.go. It links the pure Go SQLite driver, for
// cross-compilation without a C toolchain.
//
// Build command:
//   CGO_ENABLED=0 go build -tags purego ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver name to use when opening a cache.
const DriverName = "sqlite"
