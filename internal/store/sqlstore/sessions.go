package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const sessionColumns = `id, campaign_id, session_number, date, title, planned_content, notes, summary,
	highlights, created_at, updated_at`

func scanSession(row rowScanner) (*store.Session, error) {
	var ss store.Session
	err := row.Scan(&ss.ID, &ss.CampaignID, &ss.SessionNumber, &ss.Date, &ss.Title, &ss.PlannedContent,
		&ss.Notes, &ss.Summary, &ss.Highlights, scanTime(&ss.CreatedAt), scanTime(&ss.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &ss, nil
}

func (s *DB) CreateSession(ctx context.Context, in store.CreateSessionInput) (*store.Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	ss := &store.Session{
		ID:             s.newID(),
		CampaignID:     in.CampaignID,
		SessionNumber:  in.SessionNumber,
		Date:           in.Date,
		Title:          in.Title,
		PlannedContent: in.PlannedContent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `INSERT INTO sessions (`+sessionColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ss.ID, ss.CampaignID, ss.SessionNumber, nullable(ss.Date), nullable(ss.Title),
			nullable(ss.PlannedContent), nil, nil, nil, formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("creating session: %w", err)
		}
		return s.reindex(ctx, tx, store.KindSession, ss.ID)
	})
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func (s *DB) GetSession(ctx context.Context, id string) (*store.Session, error) {
	return s.getSession(ctx, s.db, id)
}

func (s *DB) getSession(ctx context.Context, q querier, id string) (*store.Session, error) {
	return selectOne(ctx, s, q, scanSession, store.KindSession.Label(), id,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
}

func (s *DB) ListSessions(ctx context.Context, campaignID string) ([]store.Session, error) {
	return selectAll(ctx, s, s.db, scanSession, "sessions",
		`SELECT `+sessionColumns+` FROM sessions WHERE campaign_id = ? ORDER BY session_number, id`, campaignID)
}

func (s *DB) UpdateSession(ctx context.Context, id string, in store.UpdateSessionInput) (*store.Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Session
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ss, err := s.getSession(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&ss.SessionNumber, in.SessionNumber)
		patchOpt(&ss.Title, in.Title)
		patchOpt(&ss.Date, in.Date)
		patchOpt(&ss.PlannedContent, in.PlannedContent)
		patchOpt(&ss.Notes, in.Notes)
		patchOpt(&ss.Summary, in.Summary)
		patchOpt(&ss.Highlights, in.Highlights)
		ss.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE sessions
			SET session_number = ?, date = ?, title = ?, planned_content = ?, notes = ?, summary = ?,
				highlights = ?, updated_at = ?
			WHERE id = ?`,
			ss.SessionNumber, nullable(ss.Date), nullable(ss.Title), nullable(ss.PlannedContent),
			nullable(ss.Notes), nullable(ss.Summary), nullable(ss.Highlights), formatTime(ss.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating session: %w", err)
		}
		if err := s.reindex(ctx, tx, store.KindSession, id); err != nil {
			return err
		}
		out = ss
		return nil
	})
	return out, err
}

func (s *DB) DeleteSession(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindSession, id)
}
