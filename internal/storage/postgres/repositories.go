// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"context"
	"time"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/uptrace/bun"
)

type RepositoryRepository struct {
	db *bun.DB
}

func NewRepositoryRepository(db *bun.DB) *RepositoryRepository {
	return &RepositoryRepository{db: db}
}

func (r *RepositoryRepository) Create(ctx context.Context, repo *storage.Repository) error {
	dbRepo := &DBRepository{
		OrganizationID: repo.OrganizationID,
		GitHubID:       repo.GitHubID,
		Owner:          repo.Owner,
		Name:           repo.Name,
		DefaultBranch:  repo.DefaultBranch,
		Language:       repo.Language,
		WebhookSecret:  repo.WebhookSecret,
		IsActive:       true,
	}

	_, err := r.db.NewInsert().
		Model(dbRepo).
		Returning("id, created_at, updated_at").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return err
	}

	repo.ID = dbRepo.ID
	repo.IsActive = true
	repo.CreatedAt = dbRepo.CreatedAt
	repo.UpdatedAt = dbRepo.UpdatedAt
	return nil
}

func (r *RepositoryRepository) Get(ctx context.Context, orgID, id string) (*storage.Repository, error) {
	var dbRepo DBRepository
	err := r.db.NewSelect().
		Model(&dbRepo).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return repositoryFromDB(&dbRepo), nil
}

func (r *RepositoryRepository) GetForWebhook(ctx context.Context, id string) (*storage.Repository, error) {
	var dbRepo DBRepository
	err := r.db.NewSelect().
		Model(&dbRepo).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return repositoryFromDB(&dbRepo), nil
}

func (r *RepositoryRepository) ListByOrganization(ctx context.Context, orgID string) ([]*storage.Repository, error) {
	return r.list(ctx, r.db.NewSelect().Where("organization_id = ?", orgID))
}

func (r *RepositoryRepository) ListActive(ctx context.Context, orgID string) ([]*storage.Repository, error) {
	return r.list(ctx, r.db.NewSelect().
		Where("organization_id = ?", orgID).
		Where("is_active"))
}

func (r *RepositoryRepository) ListOrganizationsWithActive(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.NewSelect().
		Model((*DBRepository)(nil)).
		ColumnExpr("DISTINCT organization_id").
		Where("is_active").
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *RepositoryRepository) list(ctx context.Context, q *bun.SelectQuery) ([]*storage.Repository, error) {
	var dbRepos []DBRepository
	err := q.Model(&dbRepos).
		Order("owner ASC", "name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	repos := make([]*storage.Repository, len(dbRepos))
	for i := range dbRepos {
		repos[i] = repositoryFromDB(&dbRepos[i])
	}
	return repos, nil
}

func (r *RepositoryRepository) Deactivate(ctx context.Context, orgID, id string) error {
	now := time.Now()
	res, err := r.db.NewUpdate().
		Model((*DBRepository)(nil)).
		Set("is_active = false").
		Set("deactivated_at = ?", now).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Where("is_active").
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

func repositoryFromDB(dbRepo *DBRepository) *storage.Repository {
	return &storage.Repository{
		ID:             dbRepo.ID,
		OrganizationID: dbRepo.OrganizationID,
		GitHubID:       dbRepo.GitHubID,
		Owner:          dbRepo.Owner,
		Name:           dbRepo.Name,
		DefaultBranch:  dbRepo.DefaultBranch,
		Language:       dbRepo.Language,
		WebhookSecret:  dbRepo.WebhookSecret,
		IsActive:       dbRepo.IsActive,
		CreatedAt:      dbRepo.CreatedAt,
		UpdatedAt:      dbRepo.UpdatedAt,
		DeactivatedAt:  dbRepo.DeactivatedAt,
	}
}
