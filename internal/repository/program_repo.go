package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"microwave/internal/models"

	"github.com/google/uuid"
)

// ProgramSQLite stores custom programs in the custom_programs table.
type ProgramSQLite struct {
	db *sql.DB
	mu sync.Mutex
}

func NewProgramSQLite(db *sql.DB) *ProgramSQLite {
	return &ProgramSQLite{db: db}
}

var _ CustomProgramRepo = (*ProgramSQLite)(nil)

const programColumns = `id, name, food, power_level, time_in_seconds, display_char, instructions, created_at`

const (
	insertProgramSQL = `INSERT INTO custom_programs (id, name, name_key, food, power_level, time_in_seconds, display_char, instructions, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateProgramSQL = `UPDATE custom_programs SET name = ?, name_key = ?, food = ?, power_level = ?, time_in_seconds = ?, display_char = ?, instructions = ? WHERE id = ?`
	deleteProgramSQL = `DELETE FROM custom_programs WHERE id = ?`

	selectProgramsSQL    = `SELECT ` + programColumns + ` FROM custom_programs ORDER BY rowid ASC`
	selectProgramByIDSQL = `SELECT ` + programColumns + ` FROM custom_programs WHERE id = ?`

	countProgramCharSQL = `SELECT COUNT(1) FROM custom_programs WHERE display_char = ? AND id <> ?`
	countProgramNameSQL = `SELECT COUNT(1) FROM custom_programs WHERE name_key = ? AND id <> ?`
	countProgramsSQL    = `SELECT COUNT(1) FROM custom_programs`
)

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgram(row rowScanner) (models.CustomProgram, error) {
	var p models.CustomProgram
	err := row.Scan(&p.ID, &p.Name, &p.Food, &p.PowerLevel, &p.TimeInSeconds, &p.Character, &p.Instructions, &p.CreatedAt)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, err
}

func (r *ProgramSQLite) GetAll(ctx context.Context) ([]models.CustomProgram, error) {
	rows, err := r.db.QueryContext(ctx, selectProgramsSQL)
	if err != nil {
		return nil, fmt.Errorf("select custom programs: %w", err)
	}
	defer rows.Close()

	out := make([]models.CustomProgram, 0, 16)
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scan custom program: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProgramSQLite) GetByID(ctx context.Context, id string) (*models.CustomProgram, error) {
	p, err := scanProgram(r.db.QueryRowContext(ctx, selectProgramByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select custom program %q: %w", id, err)
	}
	return &p, nil
}

// Create inserts p, generating its id and creation time when empty.
func (r *ProgramSQLite) Create(ctx context.Context, p models.CustomProgram) (models.CustomProgram, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	} else {
		p.CreatedAt = p.CreatedAt.UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, insertProgramSQL,
		p.ID, p.Name, nameKey(p.Name), p.Food, p.PowerLevel, p.TimeInSeconds, p.Character, p.Instructions, p.CreatedAt)
	if err != nil {
		return models.CustomProgram{}, fmt.Errorf("insert custom program %q: %w", p.Name, err)
	}
	return p, nil
}

// Update rewrites the editable fields; id and creation time never change.
func (r *ProgramSQLite) Update(ctx context.Context, p models.CustomProgram) (models.CustomProgram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, updateProgramSQL,
		p.Name, nameKey(p.Name), p.Food, p.PowerLevel, p.TimeInSeconds, p.Character, p.Instructions, p.ID)
	if err != nil {
		return models.CustomProgram{}, fmt.Errorf("update custom program %q: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.CustomProgram{}, fmt.Errorf("rows affected for custom program %q: %w", p.ID, err)
	}
	if n == 0 {
		return models.CustomProgram{}, ErrProgramNotFound
	}
	return p, nil
}

func (r *ProgramSQLite) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, deleteProgramSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete custom program %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for custom program %q: %w", id, err)
	}
	return n > 0, nil
}

func (r *ProgramSQLite) ExistsCharacter(ctx context.Context, char, excludeID string) (bool, error) {
	return r.exists(ctx, countProgramCharSQL, char, excludeID)
}

// ExistsName compares names case-insensitively.
func (r *ProgramSQLite) ExistsName(ctx context.Context, name, excludeID string) (bool, error) {
	return r.exists(ctx, countProgramNameSQL, nameKey(name), excludeID)
}

func (r *ProgramSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countProgramsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count custom programs: %w", err)
	}
	return n, nil
}

func (r *ProgramSQLite) exists(ctx context.Context, query, value, excludeID string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, value, excludeID).Scan(&n); err != nil {
		return false, fmt.Errorf("count custom programs: %w", err)
	}
	return n > 0, nil
}
