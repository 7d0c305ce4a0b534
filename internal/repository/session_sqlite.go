package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SessionSQLite keeps session values in session_values; removing a row from
// sessions cascades to its values.
type SessionSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db, now: time.Now}
}

var _ SessionStore = (*SessionSQLite)(nil)

const (
	touchSessionSQL = `
		INSERT INTO sessions (id, last_seen_ns) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET last_seen_ns=excluded.last_seen_ns
	`
	upsertSessionValueSQL = `
		INSERT INTO session_values (session_id, name, value) VALUES (?, ?, ?)
		ON CONFLICT(session_id, name) DO UPDATE SET value=excluded.value
	`
	selectSessionValueSQL = `SELECT value FROM session_values WHERE session_id = ? AND name = ?`
	deleteSessionValueSQL = `DELETE FROM session_values WHERE session_id = ? AND name = ?`
	sweepSessionsSQL      = `DELETE FROM sessions WHERE last_seen_ns < ?`
)

func (s *SessionSQLite) GetString(ctx context.Context, sessionID, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, selectSessionValueSQL, sessionID, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select session value %q: %w", key, err)
	}
	return v, true, nil
}

func (s *SessionSQLite) SetString(ctx context.Context, sessionID, key, value string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session write: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, touchSessionSQL, sessionID, s.now().UnixNano()); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsertSessionValueSQL, sessionID, key, value); err != nil {
		return fmt.Errorf("upsert session value %q: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session write: %w", err)
	}
	return nil
}

func (s *SessionSQLite) Remove(ctx context.Context, sessionID, key string) error {
	if _, err := s.db.ExecContext(ctx, deleteSessionValueSQL, sessionID, key); err != nil {
		return fmt.Errorf("delete session value %q: %w", key, err)
	}
	return nil
}

func (s *SessionSQLite) Touch(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, touchSessionSQL, sessionID, s.now().UnixNano()); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

func (s *SessionSQLite) Sweep(ctx context.Context, idleBefore time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, sweepSessionsSQL, idleBefore.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for sweep: %w", err)
	}
	return int(n), nil
}
