package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const campaignColumns = `id, name, description, system, settings_json, created_at, updated_at`

func scanCampaign(row rowScanner) (*store.Campaign, error) {
	var c store.Campaign
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.System, &c.SettingsJSON,
		scanTime(&c.CreatedAt), scanTime(&c.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *DB) CreateCampaign(ctx context.Context, in store.CreateCampaignInput) (*store.Campaign, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	c := &store.Campaign{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		System:      in.System,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.exec(ctx, s.db, `INSERT INTO campaigns (`+campaignColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, nullable(c.Description), nullable(c.System), nil, formatTime(now), formatTime(now))
	if err != nil {
		return nil, store.Database(fmt.Errorf("creating campaign: %w", err))
	}
	return c, nil
}

func (s *DB) GetCampaign(ctx context.Context, id string) (*store.Campaign, error) {
	return s.getCampaign(ctx, s.db, id)
}

func (s *DB) getCampaign(ctx context.Context, q querier, id string) (*store.Campaign, error) {
	return selectOne(ctx, s, q, scanCampaign, store.KindCampaign.Label(), id,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`, id)
}

func (s *DB) ListCampaigns(ctx context.Context) ([]store.Campaign, error) {
	return selectAll(ctx, s, s.db, scanCampaign, "campaigns",
		`SELECT `+campaignColumns+` FROM campaigns ORDER BY updated_at DESC, id`)
}

func (s *DB) UpdateCampaign(ctx context.Context, id string, in store.UpdateCampaignInput) (*store.Campaign, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Campaign
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		c, err := s.getCampaign(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&c.Name, in.Name)
		patchOpt(&c.Description, in.Description)
		patchOpt(&c.System, in.System)
		patchOpt(&c.SettingsJSON, in.SettingsJSON)
		c.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE campaigns
			SET name = ?, description = ?, system = ?, settings_json = ?, updated_at = ?
			WHERE id = ?`,
			c.Name, nullable(c.Description), nullable(c.System), nullable(c.SettingsJSON), formatTime(c.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating campaign: %w", err)
		}
		out = c
		return nil
	})
	return out, err
}

// DeleteCampaign removes the campaign; the schema cascades to every scoped
// row, and the campaign's search entries go with them.
func (s *DB) DeleteCampaign(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, `DELETE FROM campaigns WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting campaign: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting campaign: %w", err)
		}
		if n == 0 {
			return nil
		}
		deleted = true
		if _, err := s.exec(ctx, tx, `DELETE FROM search_index WHERE campaign_id = ?`, id); err != nil {
			return fmt.Errorf("clearing campaign search entries: %w", err)
		}
		return nil
	})
	return deleted, err
}
