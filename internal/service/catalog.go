package service

import (
	"context"
	"strings"

	"microwave/internal/models"
	"microwave/internal/oven"
	"microwave/internal/repository"
)

const (
	customDisplaySuffix = " (Personalizado)"
	cssCustom           = "custom-program"
	cssPredefined       = "predefined-program"
)

// ProgramCatalogService merges the fixed presets with the stored custom
// programs.
type ProgramCatalogService struct {
	programs repository.CustomProgramRepo
}

func NewProgramCatalogService(programs repository.CustomProgramRepo) *ProgramCatalogService {
	return &ProgramCatalogService{programs: programs}
}

// GetAllPrograms lists presets in their fixed order followed by custom
// programs in repository order.
func (s *ProgramCatalogService) GetAllPrograms(ctx context.Context) ([]models.ProgramDisplayInfo, error) {
	custom, err := s.GetCustomPrograms(ctx)
	if err != nil {
		return nil, err
	}
	return append(s.GetPredefinedPrograms(), custom...), nil
}

func (s *ProgramCatalogService) GetPredefinedPrograms() []models.ProgramDisplayInfo {
	presets := oven.PredefinedPrograms()
	out := make([]models.ProgramDisplayInfo, 0, len(presets))
	for _, p := range presets {
		out = append(out, predefinedDisplay(p))
	}
	return out
}

func (s *ProgramCatalogService) FindPredefined(name string) (models.PredefinedProgram, bool) {
	return oven.FindPredefined(name)
}

func (s *ProgramCatalogService) GetCustomPrograms(ctx context.Context) ([]models.ProgramDisplayInfo, error) {
	programs, err := s.programs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProgramDisplayInfo, 0, len(programs))
	for _, p := range programs {
		out = append(out, customDisplay(p))
	}
	return out, nil
}

// GetProgramByID resolves a preset slug or a custom program id. It returns
// (nil, nil) when neither matches.
func (s *ProgramCatalogService) GetProgramByID(ctx context.Context, id string) (*models.ProgramDisplayInfo, error) {
	for _, p := range oven.PredefinedPrograms() {
		if oven.PredefinedID(p.Name) == id {
			info := predefinedDisplay(p)
			return &info, nil
		}
	}
	p, err := s.programs.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	info := customDisplay(*p)
	return &info, nil
}

// IsCharacterUnique reports whether char is free for a custom program. The
// default display character and preset characters are never free.
func (s *ProgramCatalogService) IsCharacterUnique(ctx context.Context, char, excludeID string) (bool, error) {
	char = normalizeChar(char)
	if char == "" || char == oven.DefaultDisplayChar {
		return false, nil
	}
	for _, p := range oven.PredefinedPrograms() {
		if p.Character == char {
			return false, nil
		}
	}
	taken, err := s.programs.ExistsCharacter(ctx, char, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// GetUsedCharacters returns preset, custom and default characters without
// duplicates.
func (s *ProgramCatalogService) GetUsedCharacters(ctx context.Context) ([]string, error) {
	custom, err := s.programs.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(c string) {
		if _, ok := seen[c]; ok || c == "" {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, p := range oven.PredefinedPrograms() {
		add(p.Character)
	}
	for _, p := range custom {
		add(p.Character)
	}
	add(oven.DefaultDisplayChar)
	return out, nil
}

// IsNameAvailable compares case-insensitively against presets and custom
// programs other than excludeID.
func (s *ProgramCatalogService) IsNameAvailable(ctx context.Context, name, excludeID string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	for _, p := range oven.PredefinedPrograms() {
		if strings.EqualFold(p.Name, name) {
			return false, nil
		}
	}
	taken, err := s.programs.ExistsName(ctx, name, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func predefinedDisplay(p models.PredefinedProgram) models.ProgramDisplayInfo {
	return models.ProgramDisplayInfo{
		ID:            oven.PredefinedID(p.Name),
		Name:          p.Name,
		Food:          p.Food,
		PowerLevel:    p.PowerLevel,
		TimeInSeconds: p.TimeInSeconds,
		Character:     p.Character,
		Instructions:  p.Instructions,
		FormattedTime: oven.FormatProgramDuration(p.TimeInSeconds),
		DisplayName:   p.Name,
		CSSClass:      cssPredefined,
		FontStyle:     "normal",
	}
}

func customDisplay(p models.CustomProgram) models.ProgramDisplayInfo {
	created := p.CreatedAt
	return models.ProgramDisplayInfo{
		ID:            p.ID,
		Name:          p.Name,
		Food:          p.Food,
		PowerLevel:    p.PowerLevel,
		TimeInSeconds: p.TimeInSeconds,
		Character:     p.Character,
		Instructions:  p.Instructions,
		IsCustom:      true,
		FormattedTime: oven.FormatProgramDuration(p.TimeInSeconds),
		DisplayName:   p.Name + customDisplaySuffix,
		CSSClass:      cssCustom,
		FontStyle:     "italic",
		CreatedAt:     &created,
	}
}
