package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"microwave/internal/models"
	"microwave/internal/repository"

	"go.uber.org/zap"
)

const (
	msgProgramCreated   = "Programa customizado criado com sucesso."
	msgProgramUpdated   = "Programa customizado atualizado com sucesso."
	msgProgramDeleted   = "Programa customizado deletado com sucesso."
	msgProgramMissing   = "Programa customizado não encontrado."
	msgCreationFailed   = "Erro ao criar programa customizado."
	msgUpdateFailed     = "Erro ao atualizar programa customizado."
	msgDeleteFailed     = "Erro ao deletar programa customizado."
	validationSeparator = ", "
)

// CustomProgramService validates and persists custom programs. Validation and
// the following write run under one lock so two writers cannot claim the
// same character.
type CustomProgramService struct {
	mu        sync.Mutex
	repo      repository.CustomProgramRepo
	validator *CustomProgramValidator
	log       *zap.SugaredLogger
}

func NewCustomProgramService(repo repository.CustomProgramRepo, validator *CustomProgramValidator, log *zap.SugaredLogger) *CustomProgramService {
	return &CustomProgramService{repo: repo, validator: validator, log: log}
}

func (s *CustomProgramService) GetCustomProgram(ctx context.Context, id string) (*models.CustomProgram, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CustomProgramService) CreateProgram(ctx context.Context, in models.CustomProgramInput) (models.CustomProgramResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := programFromInput(in)
	if res, ok := s.validate(ctx, p, false, models.CodeCreationFailed, msgCreationFailed); !ok {
		return res, nil
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.log.Errorw("custom_program_create_failed", "name", p.Name, "err", err)
		return failedProgram(models.CodeCreationFailed, msgCreationFailed), nil
	}
	s.log.Infow("custom_program_created", "id", created.ID, "name", created.Name, "char", created.Character)
	return models.CustomProgramResult{OperationResult: models.Succeeded(msgProgramCreated), Program: &created}, nil
}

// UpdateProgram replaces the editable fields of program id. CreatedAt is kept.
func (s *CustomProgramService) UpdateProgram(ctx context.Context, id string, in models.CustomProgramInput) (models.CustomProgramResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorw("custom_program_lookup_failed", "id", id, "err", err)
		return failedProgram(models.CodeUpdateFailed, msgUpdateFailed), nil
	}
	if existing == nil {
		return failedProgram(models.CodeProgramNotFound, msgProgramMissing), nil
	}

	p := programFromInput(in)
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if res, ok := s.validate(ctx, p, true, models.CodeUpdateFailed, msgUpdateFailed); !ok {
		return res, nil
	}

	updated, err := s.repo.Update(ctx, p)
	switch {
	case errors.Is(err, repository.ErrProgramNotFound):
		return failedProgram(models.CodeProgramNotFound, msgProgramMissing), nil
	case err != nil:
		s.log.Errorw("custom_program_update_failed", "id", id, "err", err)
		return failedProgram(models.CodeUpdateFailed, msgUpdateFailed), nil
	}
	s.log.Infow("custom_program_updated", "id", id)
	return models.CustomProgramResult{OperationResult: models.Succeeded(msgProgramUpdated), Program: &updated}, nil
}

func (s *CustomProgramService) DeleteProgram(ctx context.Context, id string) (models.OperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Errorw("custom_program_delete_failed", "id", id, "err", err)
		return models.Failed(models.CodeDeleteFailed, msgDeleteFailed), nil
	}
	if !deleted {
		return models.Failed(models.CodeProgramNotFound, msgProgramMissing), nil
	}
	s.log.Infow("custom_program_deleted", "id", id)
	return models.Succeeded(msgProgramDeleted), nil
}

func (s *CustomProgramService) validate(ctx context.Context, p models.CustomProgram, isUpdate bool, failCode models.ErrorCode, failMsg string) (models.CustomProgramResult, bool) {
	errs, err := s.validator.Validate(ctx, p, isUpdate)
	if err != nil {
		s.log.Errorw("custom_program_validation_failed", "id", p.ID, "err", err)
		return failedProgram(failCode, failMsg), false
	}
	if len(errs) > 0 {
		return failedProgram(models.CodeValidationFailed, strings.Join(errs, validationSeparator)), false
	}
	return models.CustomProgramResult{}, true
}

func failedProgram(code models.ErrorCode, msg string) models.CustomProgramResult {
	return models.CustomProgramResult{OperationResult: models.Failed(code, msg)}
}

func programFromInput(in models.CustomProgramInput) models.CustomProgram {
	return models.CustomProgram{
		Name:          strings.TrimSpace(in.Name),
		Food:          strings.TrimSpace(in.Food),
		PowerLevel:    in.PowerLevel,
		TimeInSeconds: in.TimeInSeconds,
		Character:     normalizeChar(in.Character),
		Instructions:  strings.TrimSpace(in.Instructions),
	}
}
