package cmd

import (
	"database/sql"
	"fmt"

	"microwave/internal/config"
	"microwave/internal/logger"
	"microwave/internal/repository"
	"microwave/internal/repository/db"
	"microwave/internal/service"
)

// app holds the services the commands operate on.
type app struct {
	conn     *sql.DB
	auth     *service.AuthService
	catalog  *service.ProgramCatalogService
	programs *service.CustomProgramService
}

func openApp() (*app, error) {
	cfg, err := config.Load("configs", configFile)
	if err != nil {
		return nil, err
	}
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	var programs repository.CustomProgramRepo
	if cfg.Storage.Driver == config.StorageJSON {
		programs, err = repository.OpenProgramJSONFile(cfg.Storage.JSONPath)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	a, err := newApp(conn, programs, cfg.Auth)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return a, nil
}

// newApp builds the services over conn. programs overrides the SQLite
// program store when non-nil.
func newApp(conn *sql.DB, programs repository.CustomProgramRepo, authCfg config.AuthConfig) (*app, error) {
	if programs == nil {
		programs = repository.NewProgramSQLite(conn)
	}
	auth, err := service.NewAuthService(repository.NewAuthSQLite(conn), service.AuthOptions{
		SigningKey:    authCfg.SigningKey,
		TokenTTL:      authCfg.TokenTTL,
		EncryptionKey: authCfg.EncryptionKey,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	catalog := service.NewProgramCatalogService(programs)
	return &app{
		conn:     conn,
		auth:     auth,
		catalog:  catalog,
		programs: service.NewCustomProgramService(programs, service.NewCustomProgramValidator(catalog), logger.Nop().SugaredLogger),
	}, nil
}

func (a *app) Close() error {
	return a.conn.Close()
}

// withApp opens the app for the duration of fn.
func withApp(fn func(a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
