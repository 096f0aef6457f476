// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package memory

import (
	"context"
	"sort"

	"github.com/regrada-ai/aidebt-be/internal/storage"
)

type repoRepo Store

func (r *repoRepo) Create(_ context.Context, repo *storage.Repository) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.repos {
		if existing.IsActive && existing.OrganizationID == repo.OrganizationID &&
			fold(existing.Owner) == fold(repo.Owner) && fold(existing.Name) == fold(repo.Name) {
			return storage.ErrAlreadyExists
		}
	}

	repo.ID = newID()
	repo.IsActive = true
	repo.CreatedAt = s.now()
	repo.UpdatedAt = repo.CreatedAt
	stored := *repo
	s.repos[repo.ID] = &stored
	return nil
}

func (r *repoRepo) Get(_ context.Context, orgID, id string) (*storage.Repository, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, ok := s.repos[id]
	if !ok || repo.OrganizationID != orgID {
		return nil, storage.ErrNotFound
	}
	out := *repo
	return &out, nil
}

func (r *repoRepo) GetForWebhook(_ context.Context, id string) (*storage.Repository, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, ok := s.repos[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *repo
	return &out, nil
}

func (r *repoRepo) ListByOrganization(_ context.Context, orgID string) ([]*storage.Repository, error) {
	return r.list(orgID, false), nil
}

func (r *repoRepo) ListActive(_ context.Context, orgID string) ([]*storage.Repository, error) {
	return r.list(orgID, true), nil
}

func (r *repoRepo) list(orgID string, activeOnly bool) []*storage.Repository {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	repos := []*storage.Repository{}
	for _, repo := range s.repos {
		if repo.OrganizationID != orgID || (activeOnly && !repo.IsActive) {
			continue
		}
		out := *repo
		repos = append(repos, &out)
	}
	sort.Slice(repos, func(i, j int) bool {
		return repos[i].FullName() < repos[j].FullName()
	})
	return repos
}

func (r *repoRepo) ListOrganizationsWithActive(_ context.Context) ([]string, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for _, repo := range s.repos {
		if repo.IsActive {
			seen[repo.OrganizationID] = true
		}
	}
	return sortedKeys(seen), nil
}

func (r *repoRepo) Deactivate(_ context.Context, orgID, id string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, ok := s.repos[id]
	if !ok || repo.OrganizationID != orgID || !repo.IsActive {
		return storage.ErrNotFound
	}
	now := s.now()
	repo.IsActive = false
	repo.DeactivatedAt = &now
	repo.UpdatedAt = now
	return nil
}
