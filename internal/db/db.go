package db

import (
	"database/sql"
	"fmt"

	"ge-flipper/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// SqlDB exposes the underlying connection (used by tests and main).
func (d *DB) SqlDB() *sql.DB {
	return d.sql
}

func (d *DB) migrate() error {
	version := 0
	// Try to read current version
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS items (
				id         INTEGER PRIMARY KEY,
				name       TEXT NOT NULL,
				examine    TEXT,
				members    INTEGER NOT NULL DEFAULT 0,
				highalch   INTEGER,
				ge_limit   INTEGER,
				icon       TEXT,
				updated_at INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);

			CREATE TABLE IF NOT EXISTS price_snapshots (
				item_id     INTEGER NOT NULL,
				timestamp   INTEGER NOT NULL,
				high_price  INTEGER,
				low_price   INTEGER,
				high_volume INTEGER,
				low_volume  INTEGER,
				PRIMARY KEY (item_id, timestamp)
			);
			CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON price_snapshots(timestamp);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	if version < 2 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS watchlist (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				item_id       INTEGER NOT NULL REFERENCES items(id),
				min_margin    INTEGER,
				min_roi       REAL,
				max_buy_price INTEGER,
				notes         TEXT,
				created_at    INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_watchlist_item ON watchlist(item_id);

			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return fmt.Errorf("migration v2: %w", err)
		}
		logger.Info("DB", "Applied migration v2 (watchlist)")
	}

	return nil
}
