package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"loreweaver/internal/store"
)

func projectionSelect(p store.Projection) string {
	return fmt.Sprintf(`SELECT '%s', id, campaign_id, %s, %s FROM %s`,
		p.Kind, p.NameExpr, p.ContentExpr(), p.Table)
}

// reindex replaces the search entry of one row. It is a no-op for
// unindexed kinds and for engines whose schema triggers do the work.
func (s *DB) reindex(ctx context.Context, tx *sql.Tx, kind store.EntityKind, id string) error {
	if s.dialect.IndexTriggers() {
		return nil
	}
	p, ok := store.ProjectionFor(kind)
	if !ok {
		return nil
	}
	if _, err := s.exec(ctx, tx, `DELETE FROM search_index WHERE entity_type = ? AND entity_id = ?`, string(kind), id); err != nil {
		return fmt.Errorf("reindexing %s %s: %w", kind, id, err)
	}
	insert := `INSERT INTO search_index (entity_type, entity_id, campaign_id, name, content) ` +
		projectionSelect(p) + ` WHERE id = ?`
	if _, err := s.exec(ctx, tx, insert, id); err != nil {
		return fmt.Errorf("reindexing %s %s: %w", kind, id, err)
	}
	return nil
}

func (s *DB) unindex(ctx context.Context, tx *sql.Tx, kind store.EntityKind, id string) error {
	if s.dialect.IndexTriggers() || !kind.Indexed() {
		return nil
	}
	if _, err := s.exec(ctx, tx, `DELETE FROM search_index WHERE entity_type = ? AND entity_id = ?`, string(kind), id); err != nil {
		return fmt.Errorf("unindexing %s %s: %w", kind, id, err)
	}
	return nil
}

type indexEntry struct {
	campaignID string
	name       string
	content    string
}

func (s *DB) loadIndexEntries(ctx context.Context, q querier, query string) (map[store.EntityRef]indexEntry, error) {
	rows, err := s.query(ctx, q, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[store.EntityRef]indexEntry)
	for rows.Next() {
		var kind, id string
		var e indexEntry
		if err := rows.Scan(&kind, &id, &e.campaignID, &e.name, &e.content); err != nil {
			return nil, err
		}
		entries[store.EntityRef{Type: store.EntityKind(kind), ID: id}] = e
	}
	return entries, rows.Err()
}

// VerifyIndex compares search_index with a fresh projection of every
// indexed source table.
func (s *DB) VerifyIndex(ctx context.Context) ([]store.IndexDrift, error) {
	actual, err := s.loadIndexEntries(ctx, s.db,
		`SELECT entity_type, entity_id, campaign_id, name, content FROM search_index`)
	if err != nil {
		return nil, store.Database(fmt.Errorf("reading search index: %w", err))
	}

	drift := make([]store.IndexDrift, 0)
	for _, p := range store.Projections {
		expected, err := s.loadIndexEntries(ctx, s.db, projectionSelect(p))
		if err != nil {
			return nil, store.Database(fmt.Errorf("projecting %s: %w", p.Table, err))
		}
		for ref, want := range expected {
			got, ok := actual[ref]
			switch {
			case !ok:
				drift = append(drift, store.IndexDrift{Ref: ref, Name: want.name, Reason: store.DriftMissing})
			case got != want:
				drift = append(drift, store.IndexDrift{Ref: ref, Name: want.name, Reason: store.DriftMismatch})
			}
			delete(actual, ref)
		}
	}
	for ref, got := range actual {
		drift = append(drift, store.IndexDrift{Ref: ref, Name: got.name, Reason: store.DriftStale})
	}

	sort.Slice(drift, func(i, j int) bool {
		if drift[i].Ref.Type != drift[j].Ref.Type {
			return drift[i].Ref.Type < drift[j].Ref.Type
		}
		return drift[i].Ref.ID < drift[j].Ref.ID
	})
	return drift, nil
}

// RebuildIndex rewrites the whole search index from the source tables and
// returns the number of entries written.
func (s *DB) RebuildIndex(ctx context.Context) (int64, error) {
	var total int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.exec(ctx, tx, `DELETE FROM search_index`); err != nil {
			return fmt.Errorf("clearing search index: %w", err)
		}
		for _, p := range store.Projections {
			res, err := s.exec(ctx, tx,
				`INSERT INTO search_index (entity_type, entity_id, campaign_id, name, content) `+projectionSelect(p))
			if err != nil {
				return fmt.Errorf("indexing %s: %w", p.Table, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("indexing %s: %w", p.Table, err)
			}
			s.logger.Debug().Str("table", p.Table).Int64("entries", n).Msg("indexed table")
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("entries", total).Msg("search index rebuilt")
	return total, nil
}
