// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/regrada-ai/aidebt-be/internal/storage"
)

// lastUsedResolution limits last_used_at writes to one per key per interval
const lastUsedResolution = time.Minute

type APIKeyRepository struct {
	db *bun.DB
}

func NewAPIKeyRepository(db *bun.DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// GetByHash returns an unrevoked key. Expiry is left to the caller so it can
// report it distinctly.
func (r *APIKeyRepository) GetByHash(ctx context.Context, keyHash string) (*storage.APIKey, error) {
	row := new(DBAPIKey)
	err := r.db.NewSelect().
		Model(row).
		Where("ak.key_hash = ?", keyHash).
		Where("ak.revoked_at IS NULL").
		Scan(ctx)
	if isNoRows(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return apiKeyFromDB(row), nil
}

func (r *APIKeyRepository) Create(ctx context.Context, apiKey *storage.APIKey) error {
	row := &DBAPIKey{
		OrganizationID: apiKey.OrganizationID,
		KeyHash:        apiKey.KeyHash,
		KeyPrefix:      apiKey.KeyPrefix,
		Name:           apiKey.Name,
		Tier:           apiKey.Tier,
		Scopes:         apiKey.Scopes,
		RateLimitRPM:   apiKey.RateLimitRPM,
		ExpiresAt:      apiKey.ExpiresAt,
	}

	if _, err := r.db.NewInsert().Model(row).Returning("id, created_at").Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return err
	}

	apiKey.ID = row.ID
	apiKey.CreatedAt = row.CreatedAt
	return nil
}

// ListByOrganization returns the organization's unrevoked keys, newest first
func (r *APIKeyRepository) ListByOrganization(ctx context.Context, orgID string) ([]*storage.APIKey, error) {
	var rows []DBAPIKey
	err := r.db.NewSelect().
		Model(&rows).
		Where("ak.organization_id = ?", orgID).
		Where("ak.revoked_at IS NULL").
		OrderExpr("ak.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]*storage.APIKey, 0, len(rows))
	for i := range rows {
		keys = append(keys, apiKeyFromDB(&rows[i]))
	}
	return keys, nil
}

// UpdateLastUsed records key usage, skipping the write when the stored
// timestamp is recent enough.
func (r *APIKeyRepository) UpdateLastUsed(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.db.NewUpdate().
		Model((*DBAPIKey)(nil)).
		Set("last_used_at = ?", now).
		Where("id = ?", id).
		Where("(last_used_at IS NULL OR last_used_at < ?)", now.Add(-lastUsedResolution)).
		Exec(ctx)
	return err
}

func (r *APIKeyRepository) Revoke(ctx context.Context, orgID, id string) (*storage.APIKey, error) {
	row := new(DBAPIKey)
	err := r.db.NewUpdate().
		Model(row).
		Set("revoked_at = ?", time.Now()).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Where("revoked_at IS NULL").
		Returning("*").
		Scan(ctx)
	if isNoRows(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return apiKeyFromDB(row), nil
}

func apiKeyFromDB(row *DBAPIKey) *storage.APIKey {
	return &storage.APIKey{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		KeyHash:        row.KeyHash,
		KeyPrefix:      row.KeyPrefix,
		Name:           row.Name,
		Tier:           row.Tier,
		Scopes:         row.Scopes,
		RateLimitRPM:   row.RateLimitRPM,
		LastUsedAt:     row.LastUsedAt,
		ExpiresAt:      row.ExpiresAt,
		CreatedAt:      row.CreatedAt,
		RevokedAt:      row.RevokedAt,
	}
}
