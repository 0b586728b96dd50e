package sqlstore

import (
	"context"
	"fmt"

	"loreweaver/internal/store"
)

type endpointQuery struct {
	table string
	query string
}

var endpointQueries = []endpointQuery{
	{table: "relationships", query: `SELECT id, source_type, source_id FROM relationships`},
	{table: "relationships", query: `SELECT id, target_type, target_id FROM relationships`},
	{table: "entity_tags", query: `SELECT tag_id, entity_type, entity_id FROM entity_tags`},
	{table: "secrets", query: `SELECT id, related_entity_type, related_entity_id FROM secrets
		WHERE related_entity_type IS NOT NULL AND related_entity_id IS NOT NULL`},
}

// DanglingReferences lists untyped associations whose endpoint does not
// resolve to a live row, including endpoints of an unknown kind.
func (s *DB) DanglingReferences(ctx context.Context) ([]store.DanglingReference, error) {
	live := make(map[store.EntityRef]bool)
	for _, kind := range store.Kinds() {
		ids, err := selectAll(ctx, s, s.db, scanID, kind.Table(), `SELECT id FROM `+kind.Table())
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			live[store.EntityRef{Type: kind, ID: id}] = true
		}
	}

	dangling := make([]store.DanglingReference, 0)
	for _, eq := range endpointQueries {
		rows, err := s.query(ctx, s.db, eq.query)
		if err != nil {
			return nil, store.Database(fmt.Errorf("reading %s: %w", eq.table, err))
		}
		for rows.Next() {
			var rowID, kind, id string
			if err := rows.Scan(&rowID, &kind, &id); err != nil {
				rows.Close()
				return nil, store.Database(fmt.Errorf("scanning %s: %w", eq.table, err))
			}
			ref := store.EntityRef{Type: store.EntityKind(kind), ID: id}
			if !live[ref] {
				dangling = append(dangling, store.DanglingReference{Table: eq.table, RowID: rowID, Endpoint: ref})
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, store.Database(fmt.Errorf("iterating %s: %w", eq.table, err))
		}
	}
	return dangling, nil
}

func scanID(row rowScanner) (*string, error) {
	var id string
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	return &id, nil
}
