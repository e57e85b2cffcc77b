package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/memory"
	"github.com/SscSPs/expense_tracker_app/pkg/database"
)

// app is the wired application shared by every command.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *portssvc.ServiceContainer
	close    func()
}

// newLogger initializes the structured JSON logger and installs it as the default.
func newLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return logger
}

// bootstrap loads config, opens storage, applies migrations when enabled
// and makes sure the default category exists.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	container := services.NewServiceContainer(cfg, repos)
	def, err := container.Category.EnsureDefault(ctx)
	if err != nil {
		closeRepos()
		return nil, fmt.Errorf("failed to ensure default category: %w", err)
	}
	logger.Info("Default category ready", slog.String("category_id", def.CategoryID), slog.String("name", def.Name))

	return &app{cfg: cfg, logger: logger, services: container, close: closeRepos}, nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage, data is lost on exit")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	if cfg.RunMigrations {
		if err := runMigrations(cfg, logger); err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return repositories.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
	return nil
}
