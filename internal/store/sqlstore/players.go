package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const playerColumns = `id, campaign_id, name, preferences, boundaries, notes, created_at, updated_at`

func scanPlayer(row rowScanner) (*store.Player, error) {
	var p store.Player
	err := row.Scan(&p.ID, &p.CampaignID, &p.Name, &p.Preferences, &p.Boundaries, &p.Notes,
		scanTime(&p.CreatedAt), scanTime(&p.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *DB) CreatePlayer(ctx context.Context, in store.CreatePlayerInput) (*store.Player, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	p := &store.Player{
		ID:          s.newID(),
		CampaignID:  in.CampaignID,
		Name:        in.Name,
		Preferences: in.Preferences,
		Boundaries:  in.Boundaries,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.exec(ctx, s.db, `INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CampaignID, p.Name, nullable(p.Preferences), nullable(p.Boundaries), nullable(p.Notes),
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, store.Database(fmt.Errorf("creating player: %w", err))
	}
	return p, nil
}

func (s *DB) GetPlayer(ctx context.Context, id string) (*store.Player, error) {
	return s.getPlayer(ctx, s.db, id)
}

func (s *DB) getPlayer(ctx context.Context, q querier, id string) (*store.Player, error) {
	return selectOne(ctx, s, q, scanPlayer, store.KindPlayer.Label(), id,
		`SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
}

func (s *DB) ListPlayers(ctx context.Context, campaignID string) ([]store.Player, error) {
	return selectAll(ctx, s, s.db, scanPlayer, "players",
		`SELECT `+playerColumns+` FROM players WHERE campaign_id = ? ORDER BY name, id`, campaignID)
}

func (s *DB) UpdatePlayer(ctx context.Context, id string, in store.UpdatePlayerInput) (*store.Player, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Player
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		p, err := s.getPlayer(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&p.Name, in.Name)
		patchOpt(&p.Preferences, in.Preferences)
		patchOpt(&p.Boundaries, in.Boundaries)
		patchOpt(&p.Notes, in.Notes)
		p.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE players
			SET name = ?, preferences = ?, boundaries = ?, notes = ?, updated_at = ?
			WHERE id = ?`,
			p.Name, nullable(p.Preferences), nullable(p.Boundaries), nullable(p.Notes), formatTime(p.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating player: %w", err)
		}
		out = p
		return nil
	})
	return out, err
}

// DeletePlayer leaves the player's heroes in place with player_id cleared.
func (s *DB) DeletePlayer(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindPlayer, id)
}
