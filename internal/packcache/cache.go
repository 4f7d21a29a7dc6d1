package packcache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/packsnap/packsnap/pkg/types"
)

// Cache memoizes a pack's extracted file list in a SQLite database.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database at dbPath. Passing
// ":memory:" is valid and useful in tests.
func Open(dbPath string) (*Cache, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached file list for packPath if a cache entry exists
// and was recorded against the same modTime and size, so a rebuilt pack
// never serves a stale list. It returns types.ErrNotFound on a miss.
func (c *Cache) Lookup(ctx context.Context, packPath string, modTime, size int64) ([]types.FileInfo, error) {
	var packID int64
	err := c.db.QueryRowContext(ctx,
		`SELECT id FROM packs WHERE pack_path = ? AND mod_time = ? AND file_size = ?`,
		packPath, modTime, size,
	).Scan(&packID)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up pack: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, `SELECT path, time_stamp, file_size FROM pack_files WHERE pack_id = ?`, packID)
	if err != nil {
		return nil, fmt.Errorf("reading cached file list: %w", err)
	}
	defer rows.Close()

	var files []types.FileInfo
	for rows.Next() {
		var f types.FileInfo
		if err := rows.Scan(&f.Path, &f.TimeStamp, &f.FileSize); err != nil {
			return nil, fmt.Errorf("scanning cached file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading cached file list: %w", err)
	}

	return files, nil
}

// Store replaces whatever is cached for packPath with files, keyed by
// modTime and size.
func (c *Cache) Store(ctx context.Context, packPath string, modTime, size int64, files []types.FileInfo) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning cache transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM packs WHERE pack_path = ?`, packPath); err != nil {
		return fmt.Errorf("clearing old cache entry: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO packs (pack_path, mod_time, file_size) VALUES (?, ?, ?)`,
		packPath, modTime, size,
	)
	if err != nil {
		return fmt.Errorf("recording pack: %w", err)
	}
	packID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading new pack id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pack_files (pack_id, path, time_stamp, file_size) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing file insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range files {
		if _, err := stmt.ExecContext(ctx, packID, f.Path, f.TimeStamp, f.FileSize); err != nil {
			return fmt.Errorf("caching file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache transaction: %w", err)
	}
	return nil
}
