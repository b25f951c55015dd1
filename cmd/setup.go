package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/urfave/cli/v3"
)

// setupConfig loads the config at path, creating it from the embedded template when missing.
func (r *Runner) setupConfig(path string) *shared.Config {
	if _, err := os.Stat(path); err != nil {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			return shared.DefaultConfig()
		}
		r.logger.Info("config file created", "path", path)
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return shared.DefaultConfig()
	}
	return config
}

func (r *Runner) openSetupDatabase(config *shared.Config) (*sql.DB, error) {
	r.logger.Info("opening database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, nil
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.setupConfig(cmd.String("config"))

	db, err := r.openSetupDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("running database migrations")
	applied, err := shared.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if len(applied) == 0 {
		return r.writePlain("%s\n", r.palette.OK("Database is up to date: "+config.Database.Path))
	}
	r.logger.Info("applied migrations", "versions", applied)
	return r.writePlain("%s\n", r.palette.OK(fmt.Sprintf("Applied %d migration(s) to %s", len(applied), config.Database.Path)))
}

// SetupRollback rolls back the most recently applied migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	config := r.setupConfig(cmd.String("config"))

	db, err := r.openSetupDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := shared.RollbackMigration(db)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", r.palette.OK(fmt.Sprintf("Rolled back migration %d", version)))
}
