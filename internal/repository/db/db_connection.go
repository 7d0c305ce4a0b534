package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// a single connection keeps PRAGMAs and writes on one handle
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
}

const schemaCustomPrograms = `
CREATE TABLE IF NOT EXISTS custom_programs (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    name_key TEXT NOT NULL,
    food TEXT NOT NULL,
    power_level INTEGER NOT NULL,
    time_in_seconds INTEGER NOT NULL,
    display_char TEXT NOT NULL,
    instructions TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);
`

const schemaHeatingEvents = `
CREATE TABLE IF NOT EXISTS heating_events (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaHeatingEventsIndex = `
CREATE INDEX IF NOT EXISTS idx_heating_events_occurred_at ON heating_events (occurred_at);
`

const schemaAuthSettings = `
CREATE TABLE IF NOT EXISTS auth_settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    username TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    connection_string TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    last_login_at TIMESTAMP
);
`

const schemaSessions = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    last_seen_ns INTEGER NOT NULL
);
`

const schemaSessionValues = `
CREATE TABLE IF NOT EXISTS session_values (
    session_id TEXT NOT NULL REFERENCES sessions (id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (session_id, name)
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaCustomPrograms,
		schemaHeatingEvents,
		schemaHeatingEventsIndex,
		schemaAuthSettings,
		schemaSessions,
		schemaSessionValues,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
