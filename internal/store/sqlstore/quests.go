package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const questColumns = `id, campaign_id, name, status, plot_type, description, hook, objectives,
	complications, resolution, reward, created_at, updated_at`

func scanQuest(row rowScanner) (*store.Quest, error) {
	var q store.Quest
	err := row.Scan(&q.ID, &q.CampaignID, &q.Name, &q.Status, &q.PlotType, &q.Description, &q.Hook,
		&q.Objectives, &q.Complications, &q.Resolution, &q.Reward, scanTime(&q.CreatedAt), scanTime(&q.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *DB) CreateQuest(ctx context.Context, in store.CreateQuestInput) (*store.Quest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	q := &store.Quest{
		ID:          s.newID(),
		CampaignID:  in.CampaignID,
		Name:        in.Name,
		Status:      orDefault(in.Status, store.DefaultQuestStatus),
		PlotType:    orDefault(in.PlotType, store.DefaultPlotType),
		Description: in.Description,
		Hook:        in.Hook,
		Objectives:  in.Objectives,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `INSERT INTO quests (`+questColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			q.ID, q.CampaignID, q.Name, q.Status, q.PlotType, nullable(q.Description), nullable(q.Hook),
			nullable(q.Objectives), nil, nil, nil, formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("creating quest: %w", err)
		}
		return s.reindex(ctx, tx, store.KindQuest, q.ID)
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (s *DB) GetQuest(ctx context.Context, id string) (*store.Quest, error) {
	return s.getQuest(ctx, s.db, id)
}

func (s *DB) getQuest(ctx context.Context, q querier, id string) (*store.Quest, error) {
	return selectOne(ctx, s, q, scanQuest, store.KindQuest.Label(), id,
		`SELECT `+questColumns+` FROM quests WHERE id = ?`, id)
}

func (s *DB) ListQuests(ctx context.Context, campaignID string) ([]store.Quest, error) {
	return selectAll(ctx, s, s.db, scanQuest, "quests",
		`SELECT `+questColumns+` FROM quests WHERE campaign_id = ? ORDER BY name, id`, campaignID)
}

func (s *DB) UpdateQuest(ctx context.Context, id string, in store.UpdateQuestInput) (*store.Quest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Quest
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		q, err := s.getQuest(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&q.Name, in.Name)
		patch(&q.Status, in.Status)
		patch(&q.PlotType, in.PlotType)
		patchOpt(&q.Description, in.Description)
		patchOpt(&q.Hook, in.Hook)
		patchOpt(&q.Objectives, in.Objectives)
		patchOpt(&q.Complications, in.Complications)
		patchOpt(&q.Resolution, in.Resolution)
		patchOpt(&q.Reward, in.Reward)
		q.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE quests
			SET name = ?, status = ?, plot_type = ?, description = ?, hook = ?, objectives = ?,
				complications = ?, resolution = ?, reward = ?, updated_at = ?
			WHERE id = ?`,
			q.Name, q.Status, q.PlotType, nullable(q.Description), nullable(q.Hook), nullable(q.Objectives),
			nullable(q.Complications), nullable(q.Resolution), nullable(q.Reward), formatTime(q.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating quest: %w", err)
		}
		if err := s.reindex(ctx, tx, store.KindQuest, id); err != nil {
			return err
		}
		out = q
		return nil
	})
	return out, err
}

func (s *DB) DeleteQuest(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindQuest, id)
}
