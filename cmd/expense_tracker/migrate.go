package main

import (
	"errors"

	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Long: `Initialize or update the database schema to the latest version.

Migrations are embedded in the binary and applied to PGSQL_URL.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			if cfg.StorageDriver != config.StoragePostgres {
				return errors.New("migrate requires STORAGE_DRIVER=postgres")
			}
			return runMigrations(cfg, logger)
		},
	}
}
