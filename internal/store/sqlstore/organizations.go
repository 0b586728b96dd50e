package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"loreweaver/internal/store"
)

const organizationColumns = `id, campaign_id, name, org_type, description, goals, resources, reputation,
	secrets, is_active, created_at, updated_at`

func scanOrganization(row rowScanner) (*store.Organization, error) {
	var o store.Organization
	err := row.Scan(&o.ID, &o.CampaignID, &o.Name, &o.OrgType, &o.Description, &o.Goals, &o.Resources,
		&o.Reputation, &o.Secrets, &o.IsActive, scanTime(&o.CreatedAt), scanTime(&o.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *DB) CreateOrganization(ctx context.Context, in store.CreateOrganizationInput) (*store.Organization, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.timestamp()
	o := &store.Organization{
		ID:          s.newID(),
		CampaignID:  in.CampaignID,
		Name:        in.Name,
		OrgType:     orDefault(in.OrgType, store.DefaultOrgType),
		Description: in.Description,
		Goals:       in.Goals,
		Resources:   in.Resources,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `INSERT INTO organizations (`+organizationColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.CampaignID, o.Name, o.OrgType, nullable(o.Description), nullable(o.Goals),
			nullable(o.Resources), nil, nil, o.IsActive, formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}
		return s.reindex(ctx, tx, store.KindOrganization, o.ID)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *DB) GetOrganization(ctx context.Context, id string) (*store.Organization, error) {
	return s.getOrganization(ctx, s.db, id)
}

func (s *DB) getOrganization(ctx context.Context, q querier, id string) (*store.Organization, error) {
	return selectOne(ctx, s, q, scanOrganization, store.KindOrganization.Label(), id,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = ?`, id)
}

func (s *DB) ListOrganizations(ctx context.Context, campaignID string) ([]store.Organization, error) {
	return selectAll(ctx, s, s.db, scanOrganization, "organizations",
		`SELECT `+organizationColumns+` FROM organizations WHERE campaign_id = ? ORDER BY name, id`, campaignID)
}

func (s *DB) UpdateOrganization(ctx context.Context, id string, in store.UpdateOrganizationInput) (*store.Organization, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *store.Organization
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		o, err := s.getOrganization(ctx, tx, id)
		if err != nil {
			return err
		}
		patch(&o.Name, in.Name)
		patch(&o.OrgType, in.OrgType)
		patchOpt(&o.Description, in.Description)
		patchOpt(&o.Goals, in.Goals)
		patchOpt(&o.Resources, in.Resources)
		patchOpt(&o.Reputation, in.Reputation)
		patchOpt(&o.Secrets, in.Secrets)
		patch(&o.IsActive, in.IsActive)
		o.UpdatedAt = s.timestamp()

		_, err = s.exec(ctx, tx, `UPDATE organizations
			SET name = ?, org_type = ?, description = ?, goals = ?, resources = ?, reputation = ?,
				secrets = ?, is_active = ?, updated_at = ?
			WHERE id = ?`,
			o.Name, o.OrgType, nullable(o.Description), nullable(o.Goals), nullable(o.Resources),
			nullable(o.Reputation), nullable(o.Secrets), o.IsActive, formatTime(o.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("updating organization: %w", err)
		}
		if err := s.reindex(ctx, tx, store.KindOrganization, id); err != nil {
			return err
		}
		out = o
		return nil
	})
	return out, err
}

func (s *DB) DeleteOrganization(ctx context.Context, id string) (bool, error) {
	return s.deleteRow(ctx, store.KindOrganization, id)
}
