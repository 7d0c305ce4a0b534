package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"microwave/internal/models"
	"microwave/internal/oven"

	"golang.org/x/text/unicode/norm"
)

const (
	minTextLen         = 2
	maxTextLen         = 50
	maxInstructionsLen = 200
	maxCustomSeconds   = 7200
)

const (
	msgNameRequired      = "Nome do programa é obrigatório"
	msgNameLength        = "Nome deve ter entre 2 e 50 caracteres"
	msgFoodRequired      = "Nome do alimento é obrigatório"
	msgFoodLength        = "Alimento deve ter entre 2 e 50 caracteres"
	msgPowerRange        = "Potência deve estar entre 1 e 10"
	msgTimeRange         = "Tempo deve estar entre 1 e 7200 segundos (2 horas)"
	msgInstructionsLen   = "Instruções não podem exceder 200 caracteres"
	msgCharRequired      = "Caractere de aquecimento é obrigatório"
	msgCharSingle        = "Caractere deve ser um único símbolo"
	msgCharForbidden     = "Caractere não pode ser espaço em branco, tab, quebra de linha ou ponto"
	msgCharControl       = "Caractere não pode ser um caractere de controle"
	msgCharWhitespace    = "Caractere não pode ser um espaço em branco"
	msgCharInUseTemplate = "Caractere '%s' já está sendo usado por outro programa"
)

type characterChecker interface {
	IsCharacterUnique(ctx context.Context, char, excludeID string) (bool, error)
}

// CustomProgramValidator collects every violated constraint of a custom
// program.
type CustomProgramValidator struct {
	chars characterChecker
}

func NewCustomProgramValidator(chars characterChecker) *CustomProgramValidator {
	return &CustomProgramValidator{chars: chars}
}

// Validate returns the violations of p, in field order. The uniqueness check
// excludes p.ID when isUpdate is set. A non-nil error means the catalog could
// not be read.
func (v *CustomProgramValidator) Validate(ctx context.Context, p models.CustomProgram, isUpdate bool) ([]string, error) {
	var errs []string

	errs = appendText(errs, p.Name, msgNameRequired, msgNameLength)
	errs = appendText(errs, p.Food, msgFoodRequired, msgFoodLength)

	if p.PowerLevel < oven.MinPower || p.PowerLevel > oven.MaxPower {
		errs = append(errs, msgPowerRange)
	}
	if p.TimeInSeconds < 1 || p.TimeInSeconds > maxCustomSeconds {
		errs = append(errs, msgTimeRange)
	}

	char := normalizeChar(p.Character)
	if msg := checkChar(char); msg != "" {
		errs = append(errs, msg)
	}

	if utf8.RuneCountInString(p.Instructions) > maxInstructionsLen {
		errs = append(errs, msgInstructionsLen)
	}

	if utf8.RuneCountInString(char) == 1 {
		exclude := ""
		if isUpdate {
			exclude = p.ID
		}
		unique, err := v.chars.IsCharacterUnique(ctx, char, exclude)
		if err != nil {
			return nil, fmt.Errorf("check character uniqueness: %w", err)
		}
		if !unique {
			errs = append(errs, fmt.Sprintf(msgCharInUseTemplate, char))
		}
	}

	return errs, nil
}

func appendText(errs []string, s, required, length string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return append(errs, required)
	}
	if n := utf8.RuneCountInString(s); n < minTextLen || n > maxTextLen {
		return append(errs, length)
	}
	return errs
}

func checkChar(char string) string {
	if char == "" {
		return msgCharRequired
	}
	if utf8.RuneCountInString(char) != 1 {
		return msgCharSingle
	}
	r, _ := utf8.DecodeRuneInString(char)
	switch {
	case char == oven.DefaultDisplayChar || r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return msgCharForbidden
	case unicode.IsControl(r):
		return msgCharControl
	case unicode.IsSpace(r):
		return msgCharWhitespace
	}
	return ""
}

// normalizeChar composes the character to NFC so that visually equal input
// compares equal.
func normalizeChar(s string) string {
	return norm.NFC.String(s)
}
