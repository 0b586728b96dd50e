package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"loreweaver/internal/store"
)

// ErrEmptyMatch is the Database-kind cause reported when free text
// translates to an empty match expression.
var ErrEmptyMatch = errors.New("full-text query is empty after translation")

// Search runs a campaign-scoped full-text query, best match first.
func (s *DB) Search(ctx context.Context, q store.SearchQuery) ([]store.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	match := s.dialect.TranslateQuery(q.Query)
	if match == "" {
		return nil, store.Database(ErrEmptyMatch)
	}

	query, args := s.dialect.SearchSQL(match, q)
	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, store.Database(fmt.Errorf("searching %q: %w", match, err))
	}
	defer rows.Close()

	results := make([]store.SearchResult, 0)
	for rows.Next() {
		var r store.SearchResult
		var kind string
		if err := rows.Scan(&kind, &r.EntityID, &r.Name, &r.Snippet, &r.Rank); err != nil {
			return nil, store.Database(fmt.Errorf("scanning search result: %w", err))
		}
		r.EntityType = store.EntityKind(kind)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Database(fmt.Errorf("iterating search results: %w", err))
	}
	return results, nil
}

// KindFilter renders an "AND entity_type IN (...)" clause for the
// requested kinds, or "" when none were requested.
func KindFilter(kinds []store.EntityKind) (string, []any) {
	if len(kinds) == 0 {
		return "", nil
	}
	clause := " AND entity_type IN ("
	args := make([]any, len(kinds))
	for i, kind := range kinds {
		if i > 0 {
			clause += ", "
		}
		clause += "?"
		args[i] = string(kind)
	}
	return clause + ")", args
}
