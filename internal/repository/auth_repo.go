package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"microwave/internal/models"
)

type AuthSQLite struct {
	db *sql.DB
}

func NewAuthSQLite(db *sql.DB) *AuthSQLite {
	return &AuthSQLite{db: db}
}

var _ AuthRepo = (*AuthSQLite)(nil)

const (
	authSettingsRowID = 1

	upsertAuthSettingsSQL = `
		INSERT INTO auth_settings (id, username, password_hash, connection_string, created_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username=excluded.username,
			password_hash=excluded.password_hash,
			connection_string=excluded.connection_string,
			created_at=excluded.created_at,
			last_login_at=excluded.last_login_at
	`

	selectAuthSettingsSQL = `
		SELECT username, password_hash, connection_string, created_at, last_login_at
		FROM auth_settings WHERE id=?
	`
)

// Load returns (nil, nil) until the credential is configured.
func (r *AuthSQLite) Load(ctx context.Context) (*models.AuthSettings, error) {
	var (
		s         models.AuthSettings
		lastLogin sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, selectAuthSettingsSQL, authSettingsRowID).Scan(
		&s.Username,
		&s.PasswordHash,
		&s.EncryptedConnectionString,
		&s.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select auth settings: %w", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		s.LastLoginAt = &t
	}
	return &s, nil
}

// Save replaces the single auth_settings row.
func (r *AuthSQLite) Save(ctx context.Context, s models.AuthSettings) error {
	var lastLogin sql.NullTime
	if s.LastLoginAt != nil {
		lastLogin = sql.NullTime{Time: s.LastLoginAt.UTC(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, upsertAuthSettingsSQL,
		authSettingsRowID,
		s.Username,
		s.PasswordHash,
		s.EncryptedConnectionString,
		s.CreatedAt.UTC(),
		lastLogin,
	)
	if err != nil {
		return fmt.Errorf("save auth settings for %q: %w", s.Username, err)
	}
	return nil
}
