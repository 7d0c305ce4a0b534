package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"microwave/internal/models"
)

var (
	ErrProgramNotFound = errors.New("custom program not found")
)

// AuthRepo stores the single administrator credential.
type AuthRepo interface {
	// Load returns (nil, nil) when no credential was configured yet.
	Load(ctx context.Context) (*models.AuthSettings, error)
	Save(ctx context.Context, s models.AuthSettings) error
}

// CustomProgramRepo persists user programs. Writes are serialized by every
// implementation; reads return snapshots in creation order.
type CustomProgramRepo interface {
	GetAll(ctx context.Context) ([]models.CustomProgram, error)
	// GetByID returns (nil, nil) when the program does not exist.
	GetByID(ctx context.Context, id string) (*models.CustomProgram, error)
	Create(ctx context.Context, p models.CustomProgram) (models.CustomProgram, error)
	Update(ctx context.Context, p models.CustomProgram) (models.CustomProgram, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsCharacter(ctx context.Context, char, excludeID string) (bool, error)
	ExistsName(ctx context.Context, name, excludeID string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// EventRepo is the append-only heating log.
type EventRepo interface {
	Append(ctx context.Context, e models.HeatingEvent) error
	List(ctx context.Context, from, to time.Time, typ, sessionID string) ([]models.HeatingEvent, error)
}

// SessionStore is a string key-value bag per session id.
type SessionStore interface {
	GetString(ctx context.Context, sessionID, key string) (string, bool, error)
	SetString(ctx context.Context, sessionID, key, value string) error
	Remove(ctx context.Context, sessionID, key string) error
	// Touch marks the session as active without changing its values.
	Touch(ctx context.Context, sessionID string) error
	// Sweep drops sessions inactive since before idleBefore and reports how
	// many were removed.
	Sweep(ctx context.Context, idleBefore time.Time) (int, error)
}

type Repository struct {
	Sessions SessionStore
	Programs CustomProgramRepo
	Events   EventRepo
	Auth     AuthRepo
}

// NewRepository wires the SQLite backed repositories. sessions and programs
// replace the SQLite defaults when non-nil.
func NewRepository(db *sql.DB, sessions SessionStore, programs CustomProgramRepo) *Repository {
	if sessions == nil {
		sessions = NewSessionSQLite(db)
	}
	if programs == nil {
		programs = NewProgramSQLite(db)
	}
	return &Repository{
		Sessions: sessions,
		Programs: programs,
		Events:   NewEventSQLite(db),
		Auth:     NewAuthSQLite(db),
	}
}
