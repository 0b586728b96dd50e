package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"loreweaver/internal/store"
)

var _ store.Store = (*DB)(nil)

// Dialect captures what differs between the storage engines behind DB.
type Dialect interface {
	Name() string
	// Rebind rewrites '?' placeholders into the engine's parameter syntax.
	Rebind(query string) string
	// IndexTriggers reports whether the schema keeps search_index in sync by
	// itself. When false, every mutation of an indexed kind reindexes the
	// row inside its own transaction.
	IndexTriggers() bool
	// TranslateQuery turns free text into the engine's match syntax.
	TranslateQuery(text string) string
	// SearchSQL returns a query selecting entity_type, entity_id, name,
	// snippet and rank, best match first, using '?' placeholders.
	SearchSQL(match string, q store.SearchQuery) (string, []any)
	IsUniqueViolation(err error) bool
}

type DB struct {
	db      *sql.DB
	dialect Dialect
	logger  zerolog.Logger
	now     func() time.Time
	newID   func() string
	onClose []func()
}

type Option func(*DB)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *DB) { s.logger = logger }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *DB) { s.now = now }
}

// WithOnClose registers fn to run after the handle is closed.
func WithOnClose(fn func()) Option {
	return func(s *DB) { s.onClose = append(s.onClose, fn) }
}

func New(db *sql.DB, dialect Dialect, opts ...Option) *DB {
	s := &DB{
		db:      db,
		dialect: dialect,
		logger:  zerolog.Nop(),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SQL exposes the underlying handle for migrations and tests.
func (s *DB) SQL() *sql.DB {
	return s.db
}

func (s *DB) Dialect() Dialect {
	return s.dialect
}

func (s *DB) Close(ctx context.Context) error {
	err := s.db.Close()
	for _, fn := range s.onClose {
		fn()
	}
	return err
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *DB) exec(ctx context.Context, q querier, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *DB) query(ctx context.Context, q querier, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *DB) queryRow(ctx context.Context, q querier, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

// withTx runs fn in a transaction and maps the outcome into a store error.
func (s *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Database(fmt.Errorf("beginning transaction: %w", err))
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return store.Database(err)
	}
	if err := tx.Commit(); err != nil {
		return store.Database(fmt.Errorf("committing transaction: %w", err))
	}
	return nil
}

func (s *DB) timestamp() time.Time {
	return s.now().UTC()
}

// deleteRow removes one row of kind and everything that points at it
// through an untyped reference.
func (s *DB) deleteRow(ctx context.Context, kind store.EntityKind, id string) (bool, error) {
	var deleted bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, "DELETE FROM "+kind.Table()+" WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting %s: %w", kind, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting %s: %w", kind, err)
		}
		if n == 0 {
			return nil
		}
		deleted = true
		if err := s.unindex(ctx, tx, kind, id); err != nil {
			return err
		}
		return s.detachReferences(ctx, tx, store.EntityRef{Type: kind, ID: id})
	})
	return deleted, err
}

// detachReferences drops relationships and tag links that name ref and
// clears secrets that point at it.
func (s *DB) detachReferences(ctx context.Context, tx *sql.Tx, ref store.EntityRef) error {
	kind := string(ref.Type)
	if _, err := s.exec(ctx, tx, `DELETE FROM relationships
		WHERE (source_type = ? AND source_id = ?) OR (target_type = ? AND target_id = ?)`,
		kind, ref.ID, kind, ref.ID); err != nil {
		return fmt.Errorf("removing relationships of %s: %w", ref, err)
	}
	if _, err := s.exec(ctx, tx, `DELETE FROM entity_tags WHERE entity_type = ? AND entity_id = ?`, kind, ref.ID); err != nil {
		return fmt.Errorf("removing tags of %s: %w", ref, err)
	}
	if _, err := s.exec(ctx, tx, `UPDATE secrets
		SET related_entity_type = NULL, related_entity_id = NULL, updated_at = ?
		WHERE related_entity_type = ? AND related_entity_id = ?`,
		formatTime(s.timestamp()), kind, ref.ID); err != nil {
		return fmt.Errorf("detaching secrets from %s: %w", ref, err)
	}
	return nil
}
