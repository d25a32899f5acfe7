// Package persistence stores run history in SQLite for reporting: one row per
// run, one per recorded price and one per firm per period. Nothing in the
// simulation reads it back.
package persistence

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for run history.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		scenario TEXT NOT NULL,
		market_type TEXT NOT NULL,
		firms INTEGER NOT NULL,
		periods INTEGER NOT NULL DEFAULT 0,
		total_market_value TEXT NOT NULL DEFAULT '0',
		phase TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS prices (
		run_id TEXT NOT NULL REFERENCES runs(id),
		period INTEGER NOT NULL,
		snapshot_price TEXT NOT NULL,
		clearing_price TEXT NOT NULL,
		supply REAL NOT NULL,
		market_value TEXT NOT NULL,
		PRIMARY KEY (run_id, period)
	);

	CREATE TABLE IF NOT EXISTS firm_periods (
		run_id TEXT NOT NULL REFERENCES runs(id),
		firm TEXT NOT NULL,
		period INTEGER NOT NULL,
		production REAL NOT NULL,
		executed INTEGER NOT NULL,
		revenue TEXT NOT NULL,
		cost TEXT NOT NULL,
		profit TEXT NOT NULL,
		capital TEXT NOT NULL,
		inventory REAL NOT NULL,
		capacity REAL NOT NULL,
		efficiency REAL NOT NULL,
		PRIMARY KEY (run_id, firm, period)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMeta stores a key-value metadata pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
