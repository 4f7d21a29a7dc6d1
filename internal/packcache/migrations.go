package packcache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CurrentSchemaVersion tracks the database schema version.
const CurrentSchemaVersion = "1.0.0"

// Migration represents a database schema migration.
type Migration struct {
	Version string
	Up      string
}

// AllMigrations contains all database migrations in order.
var AllMigrations = []Migration{
	{Version: "1.0.0", Up: migrationV1Up},
}

const migrationV1Up = `
CREATE TABLE IF NOT EXISTS packs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pack_path TEXT NOT NULL UNIQUE,
    mod_time INTEGER NOT NULL,
    file_size INTEGER NOT NULL,
    cached_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS pack_files (
    pack_id INTEGER NOT NULL REFERENCES packs(id) ON DELETE CASCADE,
    path TEXT NOT NULL,
    time_stamp INTEGER NOT NULL,
    file_size INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pack_files_pack_id ON pack_files(pack_id);
`

// ApplyMigrations brings db's schema up to CurrentSchemaVersion, applying
// any migration newer than the version most recently recorded in
// schema_version.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	currentVersion := semver.MustParse("0.0.0")
	var currentVersionStr string
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1`).Scan(&currentVersionStr)
	switch {
	case err == sql.ErrNoRows:
		// no migrations applied yet
	case err != nil:
		return fmt.Errorf("reading schema_version: %w", err)
	default:
		currentVersion, err = semver.NewVersion(currentVersionStr)
		if err != nil {
			return fmt.Errorf("invalid current schema version %s: %w", currentVersionStr, err)
		}
	}

	for _, m := range AllMigrations {
		migrationVersion, err := semver.NewVersion(m.Version)
		if err != nil {
			return fmt.Errorf("invalid migration version %s: %w", m.Version, err)
		}
		if !currentVersion.LessThan(migrationVersion) {
			continue
		}

		if _, err := db.ExecContext(ctx, m.Up); err != nil {
			return fmt.Errorf("applying migration %s: %w", m.Version, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, m.Version); err != nil {
			return fmt.Errorf("recording migration %s: %w", m.Version, err)
		}
	}

	return nil
}
