package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"loreweaver/internal/store"
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

// Open connects to the database named by a sqlite:// DSN and brings its
// schema up to date.
func Open(ctx context.Context, dsn string, opts Options) (*sqlstore.DB, error) {
	driverDSN, memory, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if memory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	s := sqlstore.New(db, Dialect{}, sqlstore.WithLogger(opts.Logger.With().Str("engine", "sqlite").Logger()))
	if opts.SkipMigrations {
		return s, nil
	}
	m, err := NewMigrator(s)
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := m.Up(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewMigrator(s *sqlstore.DB) (*sqlstore.Migrator, error) {
	return sqlstore.NewMigrator(s, goose.DialectSQLite3, migrations)
}

// Dialect adapts sqlstore to SQLite with an FTS5 search index kept in
// sync by triggers.
type Dialect struct{}

func (Dialect) Name() string { return "sqlite" }

func (Dialect) Rebind(query string) string { return query }

func (Dialect) IndexTriggers() bool { return true }

func (Dialect) TranslateQuery(text string) string { return buildFTSQuery(text) }

func (Dialect) SearchSQL(match string, q store.SearchQuery) (string, []any) {
	filter, filterArgs := sqlstore.KindFilter(q.EntityTypes)
	query := `SELECT entity_type, entity_id, name,
		snippet(search_index, 4, '` + markOpen + `', '` + markClose + `', '...', ` + snippetTokens + `),
		rank
	FROM search_index
	WHERE search_index MATCH ? AND campaign_id = ?` + filter + `
	ORDER BY rank
	LIMIT ?`
	args := append([]any{match, q.CampaignID}, filterArgs...)
	return query, append(args, q.EffectiveLimit())
}

func (Dialect) IsUniqueViolation(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
