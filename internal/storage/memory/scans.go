// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package memory

import (
	"context"
	"slices"
	"time"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

type scanRepo Store

func copyScan(scan *aidebt.Scan) *aidebt.Scan {
	out := *scan
	if scan.Summary != nil {
		summary := *scan.Summary
		out.Summary = &summary
	}
	return &out
}

func (r *scanRepo) Create(_ context.Context, scan *aidebt.Scan) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	scan.ID = newID()
	scan.Status = aidebt.ScanStatusPending
	scan.Progress = 0
	scan.CreatedAt = s.now()
	s.scans[scan.ID] = copyScan(scan)
	s.scanOrder = append(s.scanOrder, scan.ID)
	return nil
}

func (r *scanRepo) Get(_ context.Context, orgID, id string) (*aidebt.Scan, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[id]
	if !ok || scan.OrganizationID != orgID {
		return nil, storage.ErrNotFound
	}
	return copyScan(scan), nil
}

func (r *scanRepo) List(_ context.Context, orgID string, filter storage.ScanFilter) ([]*aidebt.Scan, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	scans := []*aidebt.Scan{}
	for i := len(s.scanOrder) - 1; i >= 0; i-- {
		scan := s.scans[s.scanOrder[i]]
		if scan.OrganizationID != orgID {
			continue
		}
		if filter.RepositoryID != "" && scan.RepositoryID != filter.RepositoryID {
			continue
		}
		if filter.Status != "" && scan.Status != filter.Status {
			continue
		}
		scans = append(scans, copyScan(scan))
	}
	return page(scans, filter.Limit, filter.Offset), nil
}

func (r *scanRepo) ClaimNextPending(_ context.Context) (*aidebt.Scan, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.scanOrder {
		scan := s.scans[id]
		if scan.Status == aidebt.ScanStatusPending {
			s.start(scan)
			return copyScan(scan), nil
		}
	}
	return nil, storage.ErrNoPendingScan
}

func (r *scanRepo) Claim(_ context.Context, id string) (*aidebt.Scan, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[id]
	if !ok || scan.Status != aidebt.ScanStatusPending {
		return nil, storage.ErrScanNotClaimable
	}
	s.start(scan)
	return copyScan(scan), nil
}

func (s *Store) start(scan *aidebt.Scan) {
	now := s.now()
	scan.Status = aidebt.ScanStatusProcessing
	scan.Progress = 0
	scan.StartedAt = &now
}

func (r *scanRepo) UpdateProgress(_ context.Context, id string, progress int) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[id]
	if ok && scan.Status == aidebt.ScanStatusProcessing && progress >= scan.Progress {
		scan.Progress = progress
	}
	return nil
}

func (r *scanRepo) Complete(_ context.Context, id string, summary *aidebt.ScanSummary, completedAt time.Time) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[id]
	if !ok || !scan.Status.CanTransition(aidebt.ScanStatusCompleted) {
		return storage.ErrInvalidTransition
	}

	stored := *summary
	stored.FileResults = nil
	stored.PRResults = nil
	scan.Status = aidebt.ScanStatusCompleted
	scan.Progress = 100
	scan.Summary = &stored
	scan.CompletedAt = &completedAt
	return nil
}

func (r *scanRepo) Fail(_ context.Context, id string, message string, failedAt time.Time) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[id]
	if !ok || !scan.Status.CanTransition(aidebt.ScanStatusFailed) {
		return storage.ErrInvalidTransition
	}
	scan.Status = aidebt.ScanStatusFailed
	scan.ErrorMessage = message
	scan.CompletedAt = &failedAt
	return nil
}

func (r *scanRepo) PreviousCompleted(_ context.Context, orgID, repoID, excludeID string, types ...aidebt.ScanType) (*aidebt.Scan, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *aidebt.Scan
	for _, scan := range s.scans {
		if scan.OrganizationID != orgID || scan.RepositoryID != repoID || scan.ID == excludeID {
			continue
		}
		if scan.Status != aidebt.ScanStatusCompleted || scan.CompletedAt == nil {
			continue
		}
		if len(types) > 0 && !slices.Contains(types, scan.Type) {
			continue
		}
		if latest == nil || scan.CompletedAt.After(*latest.CompletedAt) {
			latest = scan
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	return copyScan(latest), nil
}

func (r *scanRepo) FailStale(_ context.Context, cutoff time.Time, message string) ([]*aidebt.Scan, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var failed []*aidebt.Scan
	for _, id := range s.scanOrder {
		scan := s.scans[id]
		if scan.Status != aidebt.ScanStatusProcessing || scan.StartedAt == nil || !scan.StartedAt.Before(cutoff) {
			continue
		}
		scan.Status = aidebt.ScanStatusFailed
		scan.ErrorMessage = message
		scan.CompletedAt = &now
		failed = append(failed, copyScan(scan))
	}
	return failed, nil
}
