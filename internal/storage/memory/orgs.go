// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package memory

import (
	"context"

	"github.com/regrada-ai/aidebt-be/internal/storage"
)

type orgRepo Store

func (r *orgRepo) Create(_ context.Context, org *storage.Organization) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orgs {
		if existing.Slug == org.Slug {
			return storage.ErrAlreadyExists
		}
	}
	if org.ID == "" {
		org.ID = newID()
	}
	org.CreatedAt = s.now()
	org.UpdatedAt = org.CreatedAt
	stored := *org
	s.orgs[org.ID] = &stored
	return nil
}

func (r *orgRepo) Get(_ context.Context, id string) (*storage.Organization, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *org
	return &out, nil
}

func (r *orgRepo) Update(_ context.Context, org *storage.Organization) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.orgs[org.ID]
	if !ok {
		return storage.ErrNotFound
	}
	existing.Name = org.Name
	existing.GitHubOrgName = org.GitHubOrgName
	existing.GitHubToken = org.GitHubToken
	existing.AlertEmails = append([]string(nil), org.AlertEmails...)
	existing.UpdatedAt = s.now()
	return nil
}

type apiKeyRepo Store

func (r *apiKeyRepo) GetByHash(_ context.Context, keyHash string) (*storage.APIKey, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range s.apiKeys {
		if key.KeyHash == keyHash && key.RevokedAt == nil {
			out := *key
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *apiKeyRepo) Create(_ context.Context, apiKey *storage.APIKey) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range s.apiKeys {
		if key.KeyHash == apiKey.KeyHash {
			return storage.ErrAlreadyExists
		}
	}
	apiKey.ID = newID()
	apiKey.CreatedAt = s.now()
	stored := *apiKey
	s.apiKeys[apiKey.ID] = &stored
	return nil
}

func (r *apiKeyRepo) ListByOrganization(_ context.Context, orgID string) ([]*storage.APIKey, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []*storage.APIKey
	for _, id := range sortedKeys(s.apiKeys) {
		key := s.apiKeys[id]
		if key.OrganizationID == orgID && key.RevokedAt == nil {
			out := *key
			keys = append(keys, &out)
		}
	}
	return keys, nil
}

func (r *apiKeyRepo) UpdateLastUsed(_ context.Context, id string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.apiKeys[id]; ok {
		now := s.now()
		key.LastUsedAt = &now
	}
	return nil
}

func (r *apiKeyRepo) Revoke(_ context.Context, orgID, id string) (*storage.APIKey, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.apiKeys[id]
	if !ok || key.OrganizationID != orgID || key.RevokedAt != nil {
		return nil, storage.ErrNotFound
	}
	now := s.now()
	key.RevokedAt = &now
	out := *key
	return &out, nil
}
