package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const tagColumns = `id, campaign_id, name, color, created_at`

func scanTag(row rowScanner) (*store.Tag, error) {
	var t store.Tag
	if err := row.Scan(&t.ID, &t.CampaignID, &t.Name, &t.Color, scanTime(&t.CreatedAt)); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *DB) CreateTag(ctx context.Context, in store.CreateTagInput) (*store.Tag, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := &store.Tag{
		ID:         s.newID(),
		CampaignID: in.CampaignID,
		Name:       in.Name,
		Color:      in.Color,
		CreatedAt:  s.timestamp(),
	}
	_, err := s.exec(ctx, s.db, `INSERT INTO tags (`+tagColumns+`) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.CampaignID, t.Name, nullable(t.Color), formatTime(t.CreatedAt))
	if err != nil {
		return nil, store.Database(fmt.Errorf("creating tag: %w", err))
	}
	return t, nil
}

func (s *DB) GetTag(ctx context.Context, id string) (*store.Tag, error) {
	return s.getTag(ctx, s.db, id)
}

func (s *DB) getTag(ctx context.Context, q querier, id string) (*store.Tag, error) {
	return selectOne(ctx, s, q, scanTag, store.KindTag.Label(), id,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)
}

func (s *DB) ListTags(ctx context.Context, campaignID string) ([]store.Tag, error) {
	return selectAll(ctx, s, s.db, scanTag, "tags",
		`SELECT `+tagColumns+` FROM tags WHERE campaign_id = ? ORDER BY name, id`, campaignID)
}

// UpdateTag renames or recolours a tag. Tags carry no updated_at.
func (s *DB) UpdateTag(ctx context.Context, id string, in store.UpdateTagInput) (*store.Tag, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Tag
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		t, err := s.getTag(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&t.Name, in.Name)
		patchOpt(&t.Color, in.Color)
		if _, err := s.exec(ctx, tx, `UPDATE tags SET name = ?, color = ? WHERE id = ?`,
			t.Name, nullable(t.Color), id); err != nil {
			return fmt.Errorf("updating tag: %w", err)
		}
		out = t
		return nil
	})
	return out, err
}

// DeleteTag removes the tag and, through the schema, its entity links. The
// tagged entities are untouched.
func (s *DB) DeleteTag(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindTag, id)
}

// AddEntityTag links a tag to an entity. Linking twice is not an error.
func (s *DB) AddEntityTag(ctx context.Context, tagID string, ref store.EntityRef) (bool, error) {
	if err := store.ValidateRef("entity", ref); err != nil {
		return false, err
	}
	_, err := s.exec(ctx, s.db, `INSERT INTO entity_tags (tag_id, entity_type, entity_id) VALUES (?, ?, ?)
		ON CONFLICT (tag_id, entity_type, entity_id) DO NOTHING`,
		tagID, string(ref.Type), ref.ID)
	if err != nil {
		return false, store.Database(fmt.Errorf("tagging %s: %w", ref, err))
	}
	return true, nil
}

func (s *DB) RemoveEntityTag(ctx context.Context, tagID string, ref store.EntityRef) (bool, error) {
	if err := store.ValidateRef("entity", ref); err != nil {
		return false, err
	}
	res, err := s.exec(ctx, s.db, `DELETE FROM entity_tags WHERE tag_id = ? AND entity_type = ? AND entity_id = ?`,
		tagID, string(ref.Type), ref.ID)
	if err != nil {
		return false, store.Database(fmt.Errorf("untagging %s: %w", ref, err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, store.Database(fmt.Errorf("untagging %s: %w", ref, err))
	}
	return n > 0, nil
}

func (s *DB) GetEntityTags(ctx context.Context, ref store.EntityRef) ([]store.Tag, error) {
	if err := store.ValidateRef("entity", ref); err != nil {
		return nil, err
	}
	return selectAll(ctx, s, s.db, scanTag, "entity tags",
		`SELECT t.id, t.campaign_id, t.name, t.color, t.created_at
		FROM tags t
		JOIN entity_tags et ON et.tag_id = t.id
		WHERE et.entity_type = ? AND et.entity_id = ?
		ORDER BY t.name, t.id`, string(ref.Type), ref.ID)
}

func scanRef(row rowScanner) (*store.EntityRef, error) {
	var kind, id string
	if err := row.Scan(&kind, &id); err != nil {
		return nil, err
	}
	return &store.EntityRef{Type: store.EntityKind(kind), ID: id}, nil
}

func (s *DB) ListTaggedEntities(ctx context.Context, tagID string) ([]store.EntityRef, error) {
	return selectAll(ctx, s, s.db, scanRef, "tagged entities",
		`SELECT entity_type, entity_id FROM entity_tags WHERE tag_id = ? ORDER BY entity_type, entity_id`, tagID)
}
