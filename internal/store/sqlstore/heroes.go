package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const heroColumns = `id, campaign_id, player_id, name, lineage, classes, description, backstory,
	goals, bonds, is_active, created_at, updated_at`

func scanHero(row rowScanner) (*store.Hero, error) {
	var h store.Hero
	err := row.Scan(&h.ID, &h.CampaignID, &h.PlayerID, &h.Name, &h.Lineage, &h.Classes, &h.Description,
		&h.Backstory, &h.Goals, &h.Bonds, &h.IsActive, scanTime(&h.CreatedAt), scanTime(&h.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *DB) CreateHero(ctx context.Context, in store.CreateHeroInput) (*store.Hero, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	h := &store.Hero{
		ID:          s.newID(),
		CampaignID:  in.CampaignID,
		PlayerID:    in.PlayerID,
		Name:        in.Name,
		Lineage:     in.Lineage,
		Classes:     in.Classes,
		Description: in.Description,
		Backstory:   in.Backstory,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `INSERT INTO heroes (`+heroColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.CampaignID, nullable(h.PlayerID), h.Name, nullable(h.Lineage), nullable(h.Classes),
			nullable(h.Description), nullable(h.Backstory), nil, nil, h.IsActive, formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("creating hero: %w", err)
		}
		return s.reindex(ctx, tx, store.KindHero, h.ID)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *DB) GetHero(ctx context.Context, id string) (*store.Hero, error) {
	return s.getHero(ctx, s.db, id)
}

func (s *DB) getHero(ctx context.Context, q querier, id string) (*store.Hero, error) {
	return selectOne(ctx, s, q, scanHero, store.KindHero.Label(), id,
		`SELECT `+heroColumns+` FROM heroes WHERE id = ?`, id)
}

func (s *DB) ListHeroes(ctx context.Context, campaignID string) ([]store.Hero, error) {
	return selectAll(ctx, s, s.db, scanHero, "heroes",
		`SELECT `+heroColumns+` FROM heroes WHERE campaign_id = ? ORDER BY name, id`, campaignID)
}

func (s *DB) UpdateHero(ctx context.Context, id string, in store.UpdateHeroInput) (*store.Hero, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Hero
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		h, err := s.getHero(ctx, tx, id)
		if err != nil {
			return err
		}
		patchOpt(&h.PlayerID, in.PlayerID)
		patch(&h.Name, in.Name)
		patchOpt(&h.Lineage, in.Lineage)
		patchOpt(&h.Classes, in.Classes)
		patchOpt(&h.Description, in.Description)
		patchOpt(&h.Backstory, in.Backstory)
		patchOpt(&h.Goals, in.Goals)
		patchOpt(&h.Bonds, in.Bonds)
		patch(&h.IsActive, in.IsActive)
		h.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE heroes
			SET player_id = ?, name = ?, lineage = ?, classes = ?, description = ?, backstory = ?,
				goals = ?, bonds = ?, is_active = ?, updated_at = ?
			WHERE id = ?`,
			nullable(h.PlayerID), h.Name, nullable(h.Lineage), nullable(h.Classes), nullable(h.Description),
			nullable(h.Backstory), nullable(h.Goals), nullable(h.Bonds), h.IsActive, formatTime(h.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating hero: %w", err)
		}
		if err := s.reindex(ctx, tx, store.KindHero, id); err != nil {
			return err
		}
		out = h
		return nil
	})
	return out, err
}

func (s *DB) DeleteHero(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindHero, id)
}
