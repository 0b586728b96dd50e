package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"loreweaver/internal/store/sqlstore"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Options struct {
	Logger zerolog.Logger
	// SkipMigrations leaves the schema untouched at open, for the
	// migrate command.
	SkipMigrations bool
}

// Open connects to the postgres:// DSN through a pgx pool and brings the
// schema up to date.
func Open(ctx context.Context, dsn string, opts Options) (*sqlstore.DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	s := sqlstore.New(db, Dialect{},
		sqlstore.WithLogger(opts.Logger.With().Str("engine", "postgres").Logger()),
		sqlstore.WithOnClose(pool.Close),
	)
	if opts.SkipMigrations {
		return s, nil
	}
	m, err := NewMigrator(s)
	if err != nil {
		s.Close(ctx)
		return nil, err
	}
	if _, err := m.Up(ctx); err != nil {
		s.Close(ctx)
		return nil, err
	}
	return s, nil
}

func NewMigrator(s *sqlstore.DB) (*sqlstore.Migrator, error) {
	return sqlstore.NewMigrator(s, goose.DialectPostgres, migrations)
}
