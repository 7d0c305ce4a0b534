package service

import (
	"context"
	"time"

	"microwave/internal/models"
	"microwave/internal/mqtt"
	"microwave/internal/repository"

	"go.uber.org/zap"
)

// Authorization manages the administrator credential and its tokens.
type Authorization interface {
	Configure(ctx context.Context, username, password, connectionString string) error
	GenerateToken(ctx context.Context, username, password string) (models.AuthToken, error)
	ParseToken(accessToken string) (string, error)
	IsConfigured(ctx context.Context) (bool, error)
	Status(ctx context.Context) (models.AuthStatus, error)
}

// Heating exposes the per-session heating state machine. Domain failures come
// back as unsuccessful results; a non-nil error means storage failed.
type Heating interface {
	StartHeating(ctx context.Context, sessionID string, durationSeconds, powerLevel int) (models.OperationResult, error)
	QuickStart(ctx context.Context, sessionID string) (models.OperationResult, error)
	StartPredefinedProgram(ctx context.Context, sessionID, name string) (models.OperationResult, error)
	StartCustomProgram(ctx context.Context, sessionID, id string) (models.OperationResult, error)
	IncreaseTime(ctx context.Context, sessionID string, additionalSeconds int) (models.OperationResult, error)
	PauseOrCancel(ctx context.Context, sessionID string) (models.OperationResult, error)
	GetHeatingProgress(ctx context.Context, sessionID string) (models.HeatingStatus, error)
}

// Catalog lists predefined and custom programs.
type Catalog interface {
	GetAllPrograms(ctx context.Context) ([]models.ProgramDisplayInfo, error)
	GetPredefinedPrograms() []models.ProgramDisplayInfo
	GetCustomPrograms(ctx context.Context) ([]models.ProgramDisplayInfo, error)
	GetProgramByID(ctx context.Context, id string) (*models.ProgramDisplayInfo, error)
	IsCharacterUnique(ctx context.Context, char, excludeID string) (bool, error)
	GetUsedCharacters(ctx context.Context) ([]string, error)
	IsNameAvailable(ctx context.Context, name, excludeID string) (bool, error)
}

// CustomPrograms manages user authored programs.
type CustomPrograms interface {
	GetCustomProgram(ctx context.Context, id string) (*models.CustomProgram, error)
	CreateProgram(ctx context.Context, in models.CustomProgramInput) (models.CustomProgramResult, error)
	UpdateProgram(ctx context.Context, id string, in models.CustomProgramInput) (models.CustomProgramResult, error)
	DeleteProgram(ctx context.Context, id string) (models.OperationResult, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.HeatingEvent, error)
}

// Sweeper runs the background loop that expires idle sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Heating
	Catalog
	CustomPrograms
	EventLog
	Sweeper
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, publisher mqtt.Publisher, log *zap.SugaredLogger, opts Options) (*Service, error) {
	auth, err := NewAuthService(repos.Auth, opts.Auth)
	if err != nil {
		return nil, err
	}
	catalog := NewProgramCatalogService(repos.Programs)
	return &Service{
		Heating:        NewMicrowaveService(repos.Sessions, catalog, repos.Events, publisher, log),
		Catalog:        catalog,
		CustomPrograms: NewCustomProgramService(repos.Programs, NewCustomProgramValidator(catalog), log),
		EventLog:       NewEventLogService(repos.Events),
		Sweeper:        NewSessionSweeper(repos.Sessions, opts.IdleTimeout, log),
		Authorization:  auth,
	}, nil
}
