package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const relationshipColumns = `id, campaign_id, source_type, source_id, target_type, target_id, relationship_type,
	description, is_bidirectional, strength, is_public, created_at, updated_at`

func scanRelationship(row rowScanner) (*store.Relationship, error) {
	var r store.Relationship
	var sourceType, targetType string
	err := row.Scan(&r.ID, &r.CampaignID, &sourceType, &r.SourceID, &targetType, &r.TargetID, &r.RelationshipType,
		&r.Description, &r.IsBidirectional, &r.Strength, &r.IsPublic, scanTime(&r.CreatedAt), scanTime(&r.UpdatedAt))
	if err != nil {
		return nil, err
	}
	r.SourceType = store.EntityKind(sourceType)
	r.TargetType = store.EntityKind(targetType)
	return &r, nil
}

func (s *DB) CreateRelationship(ctx context.Context, in store.CreateRelationshipInput) (*store.Relationship, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	r := &store.Relationship{
		ID:               s.newID(),
		CampaignID:       in.CampaignID,
		SourceType:       in.Source.Type,
		SourceID:         in.Source.ID,
		TargetType:       in.Target.Type,
		TargetID:         in.Target.ID,
		RelationshipType: in.RelationshipType,
		Description:      in.Description,
		IsBidirectional:  valueOr(in.IsBidirectional, false),
		Strength:         in.Strength,
		IsPublic:         valueOr(in.IsPublic, true),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	_, err := s.exec(ctx, s.db, `INSERT INTO relationships (`+relationshipColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CampaignID, string(r.SourceType), r.SourceID, string(r.TargetType), r.TargetID, r.RelationshipType,
		nullable(r.Description), r.IsBidirectional, nullable(r.Strength), r.IsPublic, formatTime(now), formatTime(now))
	if err != nil {
		return nil, store.Database(fmt.Errorf("creating relationship: %w", err))
	}
	return r, nil
}

func (s *DB) GetRelationship(ctx context.Context, id string) (*store.Relationship, error) {
	return s.getRelationship(ctx, s.db, id)
}

func (s *DB) getRelationship(ctx context.Context, q querier, id string) (*store.Relationship, error) {
	return selectOne(ctx, s, q, scanRelationship, "Relationship", id,
		`SELECT `+relationshipColumns+` FROM relationships WHERE id = ?`, id)
}

func (s *DB) ListRelationships(ctx context.Context, campaignID string) ([]store.Relationship, error) {
	return selectAll(ctx, s, s.db, scanRelationship, "relationships",
		`SELECT `+relationshipColumns+` FROM relationships WHERE campaign_id = ? ORDER BY created_at DESC, id`, campaignID)
}

// ListEntityRelationships returns relationships where ref is either end.
func (s *DB) ListEntityRelationships(ctx context.Context, ref store.EntityRef) ([]store.Relationship, error) {
	if err := store.ValidateRef("entity", ref); err != nil {
		return nil, err
	}
	kind := string(ref.Type)
	return selectAll(ctx, s, s.db, scanRelationship, "relationships",
		`SELECT `+relationshipColumns+` FROM relationships
		WHERE (source_type = ? AND source_id = ?) OR (target_type = ? AND target_id = ?)
		ORDER BY created_at DESC, id`, kind, ref.ID, kind, ref.ID)
}

func (s *DB) UpdateRelationship(ctx context.Context, id string, in store.UpdateRelationshipInput) (*store.Relationship, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Relationship
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		r, err := s.getRelationship(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&r.RelationshipType, in.RelationshipType)
		patchOpt(&r.Description, in.Description)
		patch(&r.IsBidirectional, in.IsBidirectional)
		patchOpt(&r.Strength, in.Strength)
		patch(&r.IsPublic, in.IsPublic)
		r.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE relationships
			SET relationship_type = ?, description = ?, is_bidirectional = ?, strength = ?, is_public = ?, updated_at = ?
			WHERE id = ?`,
			r.RelationshipType, nullable(r.Description), r.IsBidirectional, nullable(r.Strength), r.IsPublic,
			formatTime(r.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating relationship: %w", err)
		}
		out = r
		return nil
	})
	return out, err
}

func (s *DB) DeleteRelationship(ctx context.Context, id string) (bool, error) {
	res, err := s.exec(ctx, s.db, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return false, store.Database(fmt.Errorf("deleting relationship: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, store.Database(fmt.Errorf("deleting relationship: %w", err))
	}
	return n > 0, nil
}
