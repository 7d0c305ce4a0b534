package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"microwave/internal/models"

	"github.com/google/uuid"
)

const programFileVersion = "1.0"

type programFile struct {
	Programs []models.CustomProgram `json:"programs"`
	Metadata programFileMetadata    `json:"metadata"`
}

type programFileMetadata struct {
	Version       string    `json:"version"`
	LastModified  time.Time `json:"lastModified"`
	TotalPrograms int       `json:"totalPrograms"`
}

// ProgramJSONFile keeps custom programs in a single JSON document. The file is
// read once on open and rewritten atomically on every change.
type ProgramJSONFile struct {
	path     string
	mu       sync.RWMutex
	programs []models.CustomProgram
	now      func() time.Time
}

var _ CustomProgramRepo = (*ProgramJSONFile)(nil)

// OpenProgramJSONFile loads path, creating its directory when missing. A
// missing file is an empty collection.
func OpenProgramJSONFile(path string) (*ProgramJSONFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create programs directory: %w", err)
	}
	r := &ProgramJSONFile{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r, nil
	case err != nil:
		return nil, fmt.Errorf("read programs file %q: %w", path, err)
	case len(data) == 0:
		return r, nil
	}

	var doc programFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode programs file %q: %w", path, err)
	}
	r.programs = doc.Programs
	return r, nil
}

func (r *ProgramJSONFile) snapshot() []models.CustomProgram {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.CustomProgram, len(r.programs))
	copy(out, r.programs)
	return out
}

func (r *ProgramJSONFile) GetAll(ctx context.Context) ([]models.CustomProgram, error) {
	return r.snapshot(), nil
}

func (r *ProgramJSONFile) GetByID(ctx context.Context, id string) (*models.CustomProgram, error) {
	for _, p := range r.snapshot() {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProgramJSONFile) Create(ctx context.Context, p models.CustomProgram) (models.CustomProgram, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := append(append([]models.CustomProgram(nil), r.programs...), p)
	if err := r.persist(next); err != nil {
		return models.CustomProgram{}, err
	}
	r.programs = next
	return p, nil
}

func (r *ProgramJSONFile) Update(ctx context.Context, p models.CustomProgram) (models.CustomProgram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(p.ID)
	if idx < 0 {
		return models.CustomProgram{}, ErrProgramNotFound
	}
	next := append([]models.CustomProgram(nil), r.programs...)
	p.CreatedAt = next[idx].CreatedAt
	next[idx] = p
	if err := r.persist(next); err != nil {
		return models.CustomProgram{}, err
	}
	r.programs = next
	return p, nil
}

func (r *ProgramJSONFile) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	next := make([]models.CustomProgram, 0, len(r.programs)-1)
	next = append(next, r.programs[:idx]...)
	next = append(next, r.programs[idx+1:]...)
	if err := r.persist(next); err != nil {
		return false, err
	}
	r.programs = next
	return true, nil
}

func (r *ProgramJSONFile) ExistsCharacter(ctx context.Context, char, excludeID string) (bool, error) {
	for _, p := range r.snapshot() {
		if p.ID != excludeID && p.Character == char {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProgramJSONFile) ExistsName(ctx context.Context, name, excludeID string) (bool, error) {
	key := nameKey(name)
	for _, p := range r.snapshot() {
		if p.ID != excludeID && nameKey(p.Name) == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProgramJSONFile) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.programs), nil
}

// indexOf must be called with mu held.
func (r *ProgramJSONFile) indexOf(id string) int {
	for i, p := range r.programs {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// persist writes programs to a temp file and renames it over the target.
func (r *ProgramJSONFile) persist(programs []models.CustomProgram) error {
	doc := programFile{
		Programs: programs,
		Metadata: programFileMetadata{
			Version:       programFileVersion,
			LastModified:  r.now().UTC(),
			TotalPrograms: len(programs),
		},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode programs file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".programs-*.json")
	if err != nil {
		return fmt.Errorf("create temp programs file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write programs file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close programs file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace programs file: %w", err)
	}
	return nil
}
