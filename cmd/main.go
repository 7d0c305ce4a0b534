package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "microwave/docs"
	"microwave/internal/config"
	"microwave/internal/handlers"
	"microwave/internal/logger"
	"microwave/internal/mqtt"
	"microwave/internal/repository"
	"microwave/internal/repository/db"
	"microwave/internal/server"
	"microwave/internal/service"
)

// @title        Microwave API
// @version      1.0
// @description  Session scoped microwave heating simulator.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml (or $MICROWAVE_CONFIG_FILE)
	cfg, err := config.Load("configs", os.Getenv("MICROWAVE_CONFIG_FILE"))
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleEncoding).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	sessions, closeSessions, err := openSessionStore(cfg.Session, conn)
	if err != nil {
		log.Fatalw("failed to open session store", "err", err, "driver", cfg.Session.Driver)
	}
	defer closeSessions()

	programs, err := openProgramStore(cfg.Storage)
	if err != nil {
		log.Fatalw("failed to open program store", "err", err, "driver", cfg.Storage.Driver)
	}

	publisher := openPublisher(cfg.MQTT, log)
	defer func() { _ = publisher.Close() }()

	// wire dependencies
	repos := repository.NewRepository(conn, sessions, programs)
	services, err := service.NewService(repos, publisher, log.SugaredLogger, service.Options{
		Auth: service.AuthOptions{
			SigningKey:    cfg.Auth.SigningKey,
			TokenTTL:      cfg.Auth.TokenTTL,
			EncryptionKey: cfg.Auth.EncryptionKey,
		},
		IdleTimeout: cfg.Session.IdleTimeout,
	})
	if err != nil {
		log.Fatalw("failed to init services", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Sweeper.Run(ctx, cfg.Session.SweepInterval)

	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server started",
		"port", cfg.Port,
		"session_driver", cfg.Session.Driver,
		"storage_driver", cfg.Storage.Driver,
		"mqtt", cfg.MQTT.Enabled,
	)

	waitForShutdown(cancel, srv, cfg.Server, log)
}

// openSessionStore picks the session backend. The returned closer is never nil.
func openSessionStore(cfg config.SessionConfig, conn *sql.DB) (repository.SessionStore, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case config.SessionSQLite:
		return repository.NewSessionSQLite(conn), noop, nil
	case config.SessionBolt:
		store, err := repository.OpenBoltSessionStore(cfg.BoltPath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return repository.NewMemorySessionStore(cfg.IdleTimeout), noop, nil
	}
}

// openProgramStore returns nil for the SQLite default.
func openProgramStore(cfg config.StorageConfig) (repository.CustomProgramRepo, error) {
	if cfg.Driver != config.StorageJSON {
		return nil, nil
	}
	return repository.OpenProgramJSONFile(cfg.JSONPath)
}

// openPublisher falls back to a no-op publisher when the broker is disabled
// or unreachable; heating never depends on MQTT.
func openPublisher(cfg config.MQTTConfig, log *logger.Logger) mqtt.Publisher {
	if !cfg.Enabled {
		return mqtt.NopPublisher{}
	}
	pub, err := mqtt.NewRealPublisher(mqtt.Options{
		Broker:   cfg.Broker,
		ClientID: cfg.ClientID,
		Topic:    cfg.Topic,
	})
	if err != nil {
		log.Errorw("mqtt_connect_failed", "err", err, "broker", cfg.Broker)
		return mqtt.NopPublisher{}
	}
	log.Infow("mqtt_connected", "broker", cfg.Broker, "topic", cfg.Topic)
	return pub
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, cfg config.ServerConfig, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
