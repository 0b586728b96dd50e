package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loreweaver/internal/store"
)

const locationColumns = `id, campaign_id, parent_id, name, location_type, description, gm_notes, created_at, updated_at`

func scanLocation(row rowScanner) (*store.Location, error) {
	var l store.Location
	err := row.Scan(&l.ID, &l.CampaignID, &l.ParentID, &l.Name, &l.LocationType, &l.Description, &l.GMNotes,
		scanTime(&l.CreatedAt), scanTime(&l.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *DB) CreateLocation(ctx context.Context, in store.CreateLocationInput) (*store.Location, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	l := &store.Location{
		ID:           s.newID(),
		CampaignID:   in.CampaignID,
		ParentID:     in.ParentID,
		Name:         in.Name,
		LocationType: orDefault(in.LocationType, store.DefaultLocationType),
		Description:  in.Description,
		GMNotes:      in.GMNotes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if l.ParentID != nil {
			if err := s.checkParent(ctx, tx, l.ID, l.CampaignID, *l.ParentID); err != nil {
				return err
			}
		}
		_, err := s.exec(ctx, tx, `INSERT INTO locations (`+locationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.CampaignID, nullable(l.ParentID), l.Name, l.LocationType, nullable(l.Description), nullable(l.GMNotes),
			formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("creating location: %w", err)
		}
		return s.reindex(ctx, tx, store.KindLocation, l.ID)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *DB) GetLocation(ctx context.Context, id string) (*store.Location, error) {
	return s.getLocation(ctx, s.db, id)
}

func (s *DB) getLocation(ctx context.Context, q querier, id string) (*store.Location, error) {
	return selectOne(ctx, s, q, scanLocation, store.KindLocation.Label(), id,
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id)
}

func (s *DB) ListLocations(ctx context.Context, campaignID string) ([]store.Location, error) {
	return selectAll(ctx, s, s.db, scanLocation, "locations",
		`SELECT `+locationColumns+` FROM locations WHERE campaign_id = ? ORDER BY name, id`, campaignID)
}

func (s *DB) ListLocationChildren(ctx context.Context, parentID string) ([]store.Location, error) {
	return selectAll(ctx, s, s.db, scanLocation, "locations",
		`SELECT `+locationColumns+` FROM locations WHERE parent_id = ? ORDER BY name, id`, parentID)
}

func (s *DB) UpdateLocation(ctx context.Context, id string, in store.UpdateLocationInput) (*store.Location, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Location
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		l, err := s.getLocation(ctx, tx, id)
		if err != nil {
			return err
		}
		if in.ParentID != nil {
			if err := s.checkParent(ctx, tx, id, l.CampaignID, *in.ParentID); err != nil {
				return err
			}
		}
		patch(&l.Name, in.Name)
		patch(&l.LocationType, in.LocationType)
		patchOpt(&l.ParentID, in.ParentID)
		patchOpt(&l.Description, in.Description)
		patchOpt(&l.GMNotes, in.GMNotes)
		l.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE locations
			SET parent_id = ?, name = ?, location_type = ?, description = ?, gm_notes = ?, updated_at = ?
			WHERE id = ?`,
			nullable(l.ParentID), l.Name, l.LocationType, nullable(l.Description), nullable(l.GMNotes),
			formatTime(l.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating location: %w", err)
		}
		if err := s.reindex(ctx, tx, store.KindLocation, id); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

// DeleteLocation orphans the location's children; they keep existing with
// parent_id cleared.
func (s *DB) DeleteLocation(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindLocation, id)
}

// checkParent rejects a parent from another campaign and any parent that
// would close a cycle through id.
func (s *DB) checkParent(ctx context.Context, tx *sql.Tx, id, campaignID, parentID string) error {
	if parentID == id {
		return store.Validation("parent_id must not reference the location itself")
	}
	parent, err := s.getLocation(ctx, tx, parentID)
	if errors.Is(err, store.ErrNotFound) {
		return store.Validation(fmt.Sprintf("parent_id %s does not reference an existing location", parentID))
	}
	if err != nil {
		return err
	}
	if parent.CampaignID != campaignID {
		return store.Validation("parent_id must reference a location in the same campaign")
	}

	seen := map[string]bool{parent.ID: true}
	for cur := parent.ParentID; cur != nil; {
		if *cur == id {
			return store.Validation("parent_id would make the location its own ancestor")
		}
		if seen[*cur] {
			break
		}
		seen[*cur] = true
		var next *string
		if err := s.queryRow(ctx, tx, `SELECT parent_id FROM locations WHERE id = ?`, *cur).Scan(&next); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				break
			}
			return fmt.Errorf("walking location ancestors: %w", err)
		}
		cur = next
	}
	return nil
}
