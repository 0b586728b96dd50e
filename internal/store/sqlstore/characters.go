package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const characterColumns = `id, campaign_id, name, lineage, occupation, is_alive, description, personality,
	motivations, secrets, voice_notes, stat_block_json, created_at, updated_at`

func scanCharacter(row rowScanner) (*store.Character, error) {
	var c store.Character
	err := row.Scan(&c.ID, &c.CampaignID, &c.Name, &c.Lineage, &c.Occupation, &c.IsAlive, &c.Description,
		&c.Personality, &c.Motivations, &c.Secrets, &c.VoiceNotes, &c.StatBlockJSON,
		scanTime(&c.CreatedAt), scanTime(&c.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *DB) CreateCharacter(ctx context.Context, in store.CreateCharacterInput) (*store.Character, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	c := &store.Character{
		ID:          s.newID(),
		CampaignID:  in.CampaignID,
		Name:        in.Name,
		Lineage:     in.Lineage,
		Occupation:  in.Occupation,
		IsAlive:     true,
		Description: in.Description,
		Personality: in.Personality,
		Motivations: in.Motivations,
		Secrets:     in.Secrets,
		VoiceNotes:  in.VoiceNotes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `INSERT INTO characters (`+characterColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.CampaignID, c.Name, nullable(c.Lineage), nullable(c.Occupation), c.IsAlive,
			nullable(c.Description), nullable(c.Personality), nullable(c.Motivations), nullable(c.Secrets),
			nullable(c.VoiceNotes), nil, formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("creating character: %w", err)
		}
		return s.reindex(ctx, tx, store.KindCharacter, c.ID)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *DB) GetCharacter(ctx context.Context, id string) (*store.Character, error) {
	return s.getCharacter(ctx, s.db, id)
}

func (s *DB) getCharacter(ctx context.Context, q querier, id string) (*store.Character, error) {
	return selectOne(ctx, s, q, scanCharacter, store.KindCharacter.Label(), id,
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`, id)
}

func (s *DB) ListCharacters(ctx context.Context, campaignID string) ([]store.Character, error) {
	return selectAll(ctx, s, s.db, scanCharacter, "characters",
		`SELECT `+characterColumns+` FROM characters WHERE campaign_id = ? ORDER BY name, id`, campaignID)
}

func (s *DB) UpdateCharacter(ctx context.Context, id string, in store.UpdateCharacterInput) (*store.Character, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Character
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		c, err := s.getCharacter(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&c.Name, in.Name)
		patchOpt(&c.Lineage, in.Lineage)
		patchOpt(&c.Occupation, in.Occupation)
		patch(&c.IsAlive, in.IsAlive)
		patchOpt(&c.Description, in.Description)
		patchOpt(&c.Personality, in.Personality)
		patchOpt(&c.Motivations, in.Motivations)
		patchOpt(&c.Secrets, in.Secrets)
		patchOpt(&c.VoiceNotes, in.VoiceNotes)
		patchOpt(&c.StatBlockJSON, in.StatBlockJSON)
		c.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE characters
			SET name = ?, lineage = ?, occupation = ?, is_alive = ?, description = ?, personality = ?,
				motivations = ?, secrets = ?, voice_notes = ?, stat_block_json = ?, updated_at = ?
			WHERE id = ?`,
			c.Name, nullable(c.Lineage), nullable(c.Occupation), c.IsAlive, nullable(c.Description),
			nullable(c.Personality), nullable(c.Motivations), nullable(c.Secrets), nullable(c.VoiceNotes),
			nullable(c.StatBlockJSON), formatTime(c.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating character: %w", err)
		}
		if err := s.reindex(ctx, tx, store.KindCharacter, id); err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

func (s *DB) DeleteCharacter(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindCharacter, id)
}
