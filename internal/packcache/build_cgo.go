//go:build !purego

package packcache

// This file is compiled by default, with cgo enabled. It links the cgo
// SQLite driver, the faster of the two.
//
// Build command:
//   CGO_ENABLED=1 go build ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver name to use when opening a cache.
const DriverName = "sqlite3"
