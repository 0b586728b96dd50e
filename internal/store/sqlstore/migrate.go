package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// MigrationStatus describes one schema version known to a Migrator.
type MigrationStatus struct {
	Version   int64     `json:"version"`
	Name      string    `json:"name"`
	Applied   bool      `json:"applied"`
	AppliedAt time.Time `json:"applied_at,omitempty"`
}

// Migrator applies the embedded schema of one engine with goose.
type Migrator struct {
	provider *goose.Provider
	logger   zerolog.Logger
}

// NewMigrator reads *.sql files from the migrations directory of fsys.
func NewMigrator(s *DB, dialect goose.Dialect, fsys fs.FS) (*Migrator, error) {
	sub, err := fs.Sub(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("opening migrations: %w", err)
	}
	provider, err := goose.NewProvider(dialect, s.db, sub)
	if err != nil {
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return &Migrator{provider: provider, logger: s.logger}, nil
}

// Up applies every pending migration and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.logResult(r)
	}
	if err != nil {
		return len(results), fmt.Errorf("applying migrations: %w", err)
	}
	return len(results), nil
}

// Down rolls back the most recent migration. It reports false when
// nothing was applied.
func (m *Migrator) Down(ctx context.Context) (bool, error) {
	result, err := m.provider.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("rolling back migration: %w", err)
	}
	if result == nil || result.Empty {
		return false, nil
	}
	m.logResult(result)
	return true, nil
}

func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading migration status: %w", err)
	}
	out := make([]MigrationStatus, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, MigrationStatus{
			Version:   st.Source.Version,
			Name:      filepath.Base(st.Source.Path),
			Applied:   st.State == goose.StateApplied,
			AppliedAt: st.AppliedAt,
		})
	}
	return out, nil
}

func (m *Migrator) logResult(r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	m.logger.Info().
		Int64("version", r.Source.Version).
		Str("file", filepath.Base(r.Source.Path)).
		Str("direction", r.Direction).
		Dur("duration", r.Duration).
		Msg("migration applied")
}
