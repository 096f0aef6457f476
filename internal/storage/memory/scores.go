// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package memory

import (
	"context"
	"sort"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

type scoreRepo Store

func (r *scoreRepo) AppendDebtScore(_ context.Context, score *aidebt.AIDebtScore) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	score.ID = newID()
	stored := *score
	s.debtScores = append(s.debtScores, &stored)
	return nil
}

// newestFirst walks the log from the most recent append
func (s *Store) newestFirst(orgID string, repoID *string) []*aidebt.AIDebtScore {
	var out []*aidebt.AIDebtScore
	for i := len(s.debtScores) - 1; i >= 0; i-- {
		score := s.debtScores[i]
		if score.OrganizationID == orgID && sameRepo(score.RepositoryID, repoID) {
			copied := *score
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CalculatedAt.After(out[j].CalculatedAt)
	})
	return out
}

func (r *scoreRepo) LatestDebtScore(_ context.Context, orgID string, repoID *string) (*aidebt.AIDebtScore, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := s.newestFirst(orgID, repoID)
	if len(scores) == 0 {
		return nil, storage.ErrNotFound
	}
	return scores[0], nil
}

func (r *scoreRepo) ListDebtScores(_ context.Context, orgID string, repoID *string, limit int) ([]*aidebt.AIDebtScore, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	return page(s.newestFirst(orgID, repoID), limit, 0), nil
}

func (r *scoreRepo) LatestRepositoryScores(_ context.Context, orgID string) ([]*aidebt.AIDebtScore, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*aidebt.AIDebtScore
	for _, id := range sortedKeys(s.repos) {
		repo := s.repos[id]
		if repo.OrganizationID != orgID || !repo.IsActive {
			continue
		}
		repoID := repo.ID
		if scores := s.newestFirst(orgID, &repoID); len(scores) > 0 {
			out = append(out, scores[0])
		}
	}
	return out, nil
}

func (r *scoreRepo) AppendTeamScores(_ context.Context, scores []*aidebt.TeamMemberScore) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, score := range scores {
		score.ID = newID()
		stored := *score
		s.teamScores = append(s.teamScores, &stored)
	}
	return nil
}

func (r *scoreRepo) LatestTeamScores(_ context.Context, orgID string) ([]*aidebt.TeamMemberScore, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	latest := make(map[string]*aidebt.TeamMemberScore)
	for _, score := range s.teamScores {
		if score.OrganizationID != orgID {
			continue
		}
		current, ok := latest[score.Developer]
		if !ok || !score.Period.Before(current.Period) {
			latest[score.Developer] = score
		}
	}

	out := make([]*aidebt.TeamMemberScore, 0, len(latest))
	for _, dev := range sortedKeys(latest) {
		copied := *latest[dev]
		out = append(out, &copied)
	}
	return out, nil
}
