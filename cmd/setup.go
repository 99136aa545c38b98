package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/discover/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the built-in config template to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Configuration written to %s\n", configPath)
	r.writePlain("Set api.base_url (or DISCOVER_API_URL) before searching.\n")
	return nil
}

// SetupDatabase initializes the history database and runs migrations.
//
// With --rollback the most recent migration is reverted instead.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Database.Path
	if path == shared.MemoryDatabase {
		r.logger.Warn("history database is in memory; migrations will not persist", "path", path)
	}

	r.logger.Info("initializing database", "path", path)

	if cmd.Bool("rollback") {
		db, err := shared.NewDatabase(path)
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer db.Close()

		r.logger.Info("rolling back latest migration")
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		return r.writePlain("✓ Rolled back latest migration for %s\n", path)
	}

	r.logger.Info("running database migrations")
	if _, err := r.historyRepository(); err != nil {
		return err
	}

	r.logger.Infof("setup complete for database: %v", path)
	return r.writePlain("✓ Database ready at %s\n", path)
}
