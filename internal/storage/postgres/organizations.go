// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"context"
	"time"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

type OrganizationRepository struct {
	db *bun.DB
}

func NewOrganizationRepository(db *bun.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *storage.Organization) error {
	dbOrg := &DBOrganization{
		Name:          org.Name,
		Slug:          org.Slug,
		Tier:          org.Tier,
		GitHubOrgName: org.GitHubOrgName,
		GitHubToken:   org.GitHubToken,
		AlertEmails:   org.AlertEmails,
	}

	_, err := r.db.NewInsert().Model(dbOrg).Returning("id, created_at, updated_at").Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return err
	}

	org.ID = dbOrg.ID
	org.CreatedAt = dbOrg.CreatedAt
	org.UpdatedAt = dbOrg.UpdatedAt
	return nil
}

func (r *OrganizationRepository) Get(ctx context.Context, id string) (*storage.Organization, error) {
	var dbOrg DBOrganization
	err := r.db.NewSelect().
		Model(&dbOrg).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return &storage.Organization{
		ID:            dbOrg.ID,
		Name:          dbOrg.Name,
		Slug:          dbOrg.Slug,
		Tier:          dbOrg.Tier,
		GitHubOrgName: dbOrg.GitHubOrgName,
		GitHubToken:   dbOrg.GitHubToken,
		AlertEmails:   dbOrg.AlertEmails,
		CreatedAt:     dbOrg.CreatedAt,
		UpdatedAt:     dbOrg.UpdatedAt,
	}, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *storage.Organization) error {
	res, err := r.db.NewUpdate().
		Model((*DBOrganization)(nil)).
		Set("name = ?", org.Name).
		Set("github_org_name = ?", org.GitHubOrgName).
		Set("github_token = ?", org.GitHubToken).
		Set("alert_emails = ?", pgdialect.Array(org.AlertEmails)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", org.ID).
		Exec(ctx)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
