package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mvillanueva/travel-expense/internal/config"
	"github.com/mvillanueva/travel-expense/internal/export"
	httpserver "github.com/mvillanueva/travel-expense/internal/interfaces/http"
	"github.com/mvillanueva/travel-expense/internal/repository"
	"github.com/mvillanueva/travel-expense/internal/session"
	"github.com/mvillanueva/travel-expense/internal/submit"
	"github.com/mvillanueva/travel-expense/pkg/database"
	"github.com/mvillanueva/travel-expense/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Travel Expense Form Service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(os.DirFS(cfg.Database.MigrationsDir)); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize the submission endpoint client
	submitter := submit.New(submit.Config{
		EndpointURL: cfg.Submission.EndpointURL,
		Timeout:     cfg.Submission.Timeout,
	}, logger)

	// Initialize the Excel exporter
	exporter, err := export.NewExporter(cfg.Export.OutputDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize exporter", zap.Error(err))
	}

	// Initialize repositories
	submissionRepo := repository.NewSubmissionRepository(db.DB, logger)

	// Initialize the session store and its sweeper
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := session.NewManager(cfg.Session.TTL, logger)
	go sessions.Run(ctx)

	// Initialize the HTTP server
	handlers := httpserver.NewHandlers(
		sessions,
		submitter,
		db,
		submissionRepo,
		exporter,
		cfg.Session.CookieName,
		logger,
	)

	server, err := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, logger)
	if err != nil {
		logger.Fatal("Failed to initialize HTTP server", zap.Error(err))
	}

	// Start blocks until the context is cancelled by a signal, then
	// shuts the server down gracefully.
	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server error", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
