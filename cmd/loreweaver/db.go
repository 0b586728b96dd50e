package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"loreweaver/internal/config"
	"loreweaver/internal/logging"
	"loreweaver/internal/store/postgres"
	"loreweaver/internal/store/sqlite"
	"loreweaver/internal/store/sqlstore"
)

type globalFlags struct {
	configPath string
	dsn        string
}

var globals globalFlags

// setup loads the config and builds the stderr logger every command uses.
// A missing config file is only an error when --config was given.
func setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(globals.configPath, !cmd.Flags().Changed("config"))
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if globals.dsn != "" {
		cfg.Database.DSN = globals.dsn
		if err := cfg.Validate(); err != nil {
			return nil, zerolog.Nop(), err
		}
	}
	logger, err := logging.New("loreweaver", cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

func openDB(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*sqlstore.DB, error) {
	return openEngine(ctx, cfg, logger, false)
}

func openEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger, skipMigrations bool) (*sqlstore.DB, error) {
	engine, err := config.Engine(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	switch engine {
	case "sqlite":
		return sqlite.Open(ctx, cfg.Database.DSN, sqlite.Options{Logger: logger, SkipMigrations: skipMigrations})
	case "postgres":
		return postgres.Open(ctx, cfg.Database.DSN, postgres.Options{Logger: logger, SkipMigrations: skipMigrations})
	}
	return nil, fmt.Errorf("unsupported engine %q", engine)
}

func newMigrator(cfg *config.Config, db *sqlstore.DB) (*sqlstore.Migrator, error) {
	engine, err := config.Engine(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if engine == "postgres" {
		return postgres.NewMigrator(db)
	}
	return sqlite.NewMigrator(db)
}
