package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"loreweaver/internal/store"
)

// timeLayout is fixed width so text order is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

type timeScanner struct {
	dst *time.Time
}

func scanTime(dst *time.Time) sql.Scanner {
	return timeScanner{dst: dst}
}

func (ts timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.dst = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.dst = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts timeScanner) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	*ts.dst = t.UTC()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// nullable turns an optional value into a bind argument.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func patch[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func patchOpt[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// selectOne loads a single row, mapping no rows to NotFound.
func selectOne[T any](ctx context.Context, s *DB, q querier, scan func(rowScanner) (*T, error), label, id, query string, args ...any) (*T, error) {
	v, err := scan(s.queryRow(ctx, q, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NotFound(label, id)
	}
	if err != nil {
		return nil, store.Database(fmt.Errorf("loading %s: %w", strings.ToLower(label), err))
	}
	return v, nil
}

// selectAll drains a query into a non-nil slice.
func selectAll[T any](ctx context.Context, s *DB, q querier, scan func(rowScanner) (*T, error), what, query string, args ...any) ([]T, error) {
	rows, err := s.query(ctx, q, query, args...)
	if err != nil {
		return nil, store.Database(fmt.Errorf("listing %s: %w", what, err))
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, store.Database(fmt.Errorf("scanning %s: %w", what, err))
		}
		items = append(items, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Database(fmt.Errorf("iterating %s: %w", what, err))
	}
	return items, nil
}
