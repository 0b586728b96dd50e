package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const secretColumns = `id, campaign_id, title, content, related_entity_type, related_entity_id, known_by,
	revealed, revealed_in_session, created_at, updated_at`

func scanSecret(row rowScanner) (*store.Secret, error) {
	var sc store.Secret
	err := row.Scan(&sc.ID, &sc.CampaignID, &sc.Title, &sc.Content, &sc.RelatedEntityType, &sc.RelatedEntityID,
		&sc.KnownBy, &sc.Revealed, &sc.RevealedInSession, scanTime(&sc.CreatedAt), scanTime(&sc.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func refParts(ref *store.EntityRef) (*string, *string) {
	if ref == nil {
		return nil, nil
	}
	kind, id := string(ref.Type), ref.ID
	return &kind, &id
}

func (s *DB) CreateSecret(ctx context.Context, in store.CreateSecretInput) (*store.Secret, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	sc := &store.Secret{
		ID:         s.newID(),
		CampaignID: in.CampaignID,
		Title:      in.Title,
		Content:    in.Content,
		KnownBy:    in.KnownBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	sc.RelatedEntityType, sc.RelatedEntityID = refParts(in.RelatedEntity)
	_, err := s.exec(ctx, s.db, `INSERT INTO secrets (`+secretColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.CampaignID, sc.Title, sc.Content, nullable(sc.RelatedEntityType), nullable(sc.RelatedEntityID),
		nullable(sc.KnownBy), sc.Revealed, nil, formatTime(now), formatTime(now))
	if err != nil {
		return nil, store.Database(fmt.Errorf("creating secret: %w", err))
	}
	return sc, nil
}

func (s *DB) GetSecret(ctx context.Context, id string) (*store.Secret, error) {
	return s.getSecret(ctx, s.db, id)
}

func (s *DB) getSecret(ctx context.Context, q querier, id string) (*store.Secret, error) {
	return selectOne(ctx, s, q, scanSecret, store.KindSecret.Label(), id,
		`SELECT `+secretColumns+` FROM secrets WHERE id = ?`, id)
}

func (s *DB) ListSecrets(ctx context.Context, campaignID string) ([]store.Secret, error) {
	return selectAll(ctx, s, s.db, scanSecret, "secrets",
		`SELECT `+secretColumns+` FROM secrets WHERE campaign_id = ? ORDER BY created_at DESC, id`, campaignID)
}

func (s *DB) UpdateSecret(ctx context.Context, id string, in store.UpdateSecretInput) (*store.Secret, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Secret
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		sc, err := s.getSecret(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&sc.Title, in.Title)
		patch(&sc.Content, in.Content)
		if in.RelatedEntity != nil {
			sc.RelatedEntityType, sc.RelatedEntityID = refParts(in.RelatedEntity)
		}
		patchOpt(&sc.KnownBy, in.KnownBy)
		patch(&sc.Revealed, in.Revealed)
		patchOpt(&sc.RevealedInSession, in.RevealedInSession)
		sc.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE secrets
			SET title = ?, content = ?, related_entity_type = ?, related_entity_id = ?, known_by = ?,
				revealed = ?, revealed_in_session = ?, updated_at = ?
			WHERE id = ?`,
			sc.Title, sc.Content, nullable(sc.RelatedEntityType), nullable(sc.RelatedEntityID), nullable(sc.KnownBy),
			sc.Revealed, nullable(sc.RevealedInSession), formatTime(sc.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating secret: %w", err)
		}
		out = sc
		return nil
	})
	return out, err
}

func (s *DB) DeleteSecret(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindSecret, id)
}
