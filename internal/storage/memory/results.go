// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

type resultRepo Store

func (r *resultRepo) CreateFileResults(_ context.Context, scan *aidebt.Scan, results []aidebt.FileResult) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, res := range results {
		res.ID = newID()
		res.ScanID = scan.ID
		s.files[scan.ID] = append(s.files[scan.ID], res)
	}
	return nil
}

func (r *resultRepo) CreatePRResults(_ context.Context, scan *aidebt.Scan, results []aidebt.PRResult) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, res := range results {
		res.ID = newID()
		res.ScanID = scan.ID
		res.Reviewers = slices.Clone(res.Reviewers)
		s.prs = append(s.prs, prRow{orgID: scan.OrganizationID, repoID: scan.RepositoryID, result: res})
	}
	return nil
}

func (r *resultRepo) ListFileResults(_ context.Context, orgID, scanID string, limit, offset int) ([]aidebt.FileResult, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[scanID]
	if !ok || scan.OrganizationID != orgID {
		return []aidebt.FileResult{}, nil
	}

	results := slices.Clone(s.files[scanID])
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Detection.CombinedProbability != results[j].Detection.CombinedProbability {
			return results[i].Detection.CombinedProbability > results[j].Detection.CombinedProbability
		}
		return results[i].Path < results[j].Path
	})
	return page(results, limit, offset), nil
}

func (r *resultRepo) ListPRResults(_ context.Context, orgID, scanID string, limit, offset int) ([]aidebt.PRResult, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	results := []aidebt.PRResult{}
	for _, row := range s.prs {
		if row.orgID == orgID && row.result.ScanID == scanID {
			res := row.result
			res.Reviewers = slices.Clone(res.Reviewers)
			results = append(results, res)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Number > results[j].Number
	})
	return page(results, limit, offset), nil
}

func (r *resultRepo) MarkPRReviewed(_ context.Context, orgID, repoID string, number int, reviewer string) (int, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.prs {
		row := &s.prs[i]
		if row.orgID != orgID || row.repoID != repoID || row.result.Number != number {
			continue
		}
		dirty := !row.result.HumanReviewed
		row.result.HumanReviewed = true
		if reviewer != "" && !slices.Contains(row.result.Reviewers, reviewer) {
			row.result.Reviewers = append(row.result.Reviewers, reviewer)
			row.result.ReviewCount++
			dirty = true
		}
		if dirty {
			changed++
		}
	}
	return changed, nil
}
