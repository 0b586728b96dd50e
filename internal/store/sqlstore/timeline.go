package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const timelineColumns = `id, campaign_id, date_display, sort_order, title, description, significance,
	is_public, created_at, updated_at`

func scanTimelineEvent(row rowScanner) (*store.TimelineEvent, error) {
	var e store.TimelineEvent
	err := row.Scan(&e.ID, &e.CampaignID, &e.DateDisplay, &e.SortOrder, &e.Title, &e.Description,
		&e.Significance, &e.IsPublic, scanTime(&e.CreatedAt), scanTime(&e.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *DB) CreateTimelineEvent(ctx context.Context, in store.CreateTimelineEventInput) (*store.TimelineEvent, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	e := &store.TimelineEvent{
		ID:           s.newID(),
		CampaignID:   in.CampaignID,
		DateDisplay:  in.DateDisplay,
		SortOrder:    valueOr(in.SortOrder, 0),
		Title:        in.Title,
		Description:  in.Description,
		Significance: orDefault(in.Significance, store.DefaultSignificance),
		IsPublic:     valueOr(in.IsPublic, true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := s.exec(ctx, s.db, `INSERT INTO timeline_events (`+timelineColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CampaignID, e.DateDisplay, e.SortOrder, e.Title, nullable(e.Description), e.Significance,
		e.IsPublic, formatTime(now), formatTime(now))
	if err != nil {
		return nil, store.Database(fmt.Errorf("creating timeline event: %w", err))
	}
	return e, nil
}

func (s *DB) GetTimelineEvent(ctx context.Context, id string) (*store.TimelineEvent, error) {
	return s.getTimelineEvent(ctx, s.db, id)
}

func (s *DB) getTimelineEvent(ctx context.Context, q querier, id string) (*store.TimelineEvent, error) {
	return selectOne(ctx, s, q, scanTimelineEvent, store.KindTimelineEvent.Label(), id,
		`SELECT `+timelineColumns+` FROM timeline_events WHERE id = ?`, id)
}

func (s *DB) ListTimelineEvents(ctx context.Context, campaignID string) ([]store.TimelineEvent, error) {
	return selectAll(ctx, s, s.db, scanTimelineEvent, "timeline events",
		`SELECT `+timelineColumns+` FROM timeline_events WHERE campaign_id = ?
		ORDER BY sort_order, created_at, id`, campaignID)
}

func (s *DB) UpdateTimelineEvent(ctx context.Context, id string, in store.UpdateTimelineEventInput) (*store.TimelineEvent, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.TimelineEvent
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		e, err := s.getTimelineEvent(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&e.Title, in.Title)
		patch(&e.DateDisplay, in.DateDisplay)
		patch(&e.SortOrder, in.SortOrder)
		patchOpt(&e.Description, in.Description)
		patch(&e.Significance, in.Significance)
		patch(&e.IsPublic, in.IsPublic)
		e.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE timeline_events
			SET date_display = ?, sort_order = ?, title = ?, description = ?, significance = ?,
				is_public = ?, updated_at = ?
			WHERE id = ?`,
			e.DateDisplay, e.SortOrder, e.Title, nullable(e.Description), e.Significance, e.IsPublic,
			formatTime(e.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating timeline event: %w", err)
		}
		out = e
		return nil
	})
	return out, err
}

func (s *DB) DeleteTimelineEvent(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindTimelineEvent, id)
}
