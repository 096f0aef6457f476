// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRepo(t *testing.T, s *Store, orgID string) *storage.Repository {
	t.Helper()
	repo := &storage.Repository{OrganizationID: orgID, Owner: "acme", Name: "api"}
	require.NoError(t, s.Repositories().Create(context.Background(), repo))
	return repo
}

func TestClaimNextPending_ConcurrentClaimersGetDistinctScans(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := seedRepo(t, s, "org-1")

	const pending = 5
	for i := 0; i < pending; i++ {
		require.NoError(t, s.Scans().Create(ctx, &aidebt.Scan{OrganizationID: "org-1", RepositoryID: repo.ID, Type: aidebt.ScanTypeFull}))
	}

	var (
		mu      sync.Mutex
		claimed = map[string]int{}
		misses  int
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scan, err := s.Scans().ClaimNextPending(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, storage.ErrNoPendingScan)
				misses++
				return
			}
			claimed[scan.ID]++
		}()
	}
	wg.Wait()

	assert.Len(t, claimed, pending)
	for id, n := range claimed {
		assert.Equal(t, 1, n, "scan %s claimed more than once", id)
	}
	assert.Equal(t, 20-pending, misses)
}

func TestClaim_OnlyOneWinner(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := seedRepo(t, s, "org-1")
	scan := &aidebt.Scan{OrganizationID: "org-1", RepositoryID: repo.ID, Type: aidebt.ScanTypeFull}
	require.NoError(t, s.Scans().Create(ctx, scan))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Scans().Claim(ctx, scan.ID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, storage.ErrScanNotClaimable)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	got, err := s.Scans().Get(ctx, "org-1", scan.ID)
	require.NoError(t, err)
	assert.Equal(t, aidebt.ScanStatusProcessing, got.Status)
}

func TestScanLifecycle_TerminalStatesAreFinal(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := seedRepo(t, s, "org-1")
	scan := &aidebt.Scan{OrganizationID: "org-1", RepositoryID: repo.ID, Type: aidebt.ScanTypeFull}
	require.NoError(t, s.Scans().Create(ctx, scan))

	err := s.Scans().Complete(ctx, scan.ID, &aidebt.ScanSummary{}, time.Now())
	assert.ErrorIs(t, err, storage.ErrInvalidTransition, "pending scans cannot complete")

	_, err = s.Scans().Claim(ctx, scan.ID)
	require.NoError(t, err)
	require.NoError(t, s.Scans().Complete(ctx, scan.ID, &aidebt.ScanSummary{TotalFiles: 3}, time.Now()))

	assert.ErrorIs(t, s.Scans().Fail(ctx, scan.ID, "late", time.Now()), storage.ErrInvalidTransition)

	got, err := s.Scans().Get(ctx, "org-1", scan.ID)
	require.NoError(t, err)
	assert.Equal(t, aidebt.ScanStatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, 3, got.Summary.TotalFiles)
}

func TestScans_TenantScoped(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := seedRepo(t, s, "org-1")
	scan := &aidebt.Scan{OrganizationID: "org-1", RepositoryID: repo.ID, Type: aidebt.ScanTypeFull}
	require.NoError(t, s.Scans().Create(ctx, scan))

	_, err := s.Scans().Get(ctx, "org-2", scan.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := s.Scans().List(ctx, "org-2", storage.ScanFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFailStale(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return start })
	repo := seedRepo(t, s, "org-1")

	old := &aidebt.Scan{OrganizationID: "org-1", RepositoryID: repo.ID, Type: aidebt.ScanTypeFull}
	require.NoError(t, s.Scans().Create(ctx, old))
	_, err := s.Scans().Claim(ctx, old.ID)
	require.NoError(t, err)

	s.SetClock(func() time.Time { return start.Add(time.Hour) })
	fresh := &aidebt.Scan{OrganizationID: "org-1", RepositoryID: repo.ID, Type: aidebt.ScanTypeFull}
	require.NoError(t, s.Scans().Create(ctx, fresh))
	_, err = s.Scans().Claim(ctx, fresh.ID)
	require.NoError(t, err)

	failed, err := s.Scans().FailStale(ctx, start.Add(30*time.Minute), "processing timed out")
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, old.ID, failed[0].ID)
	assert.Equal(t, "processing timed out", failed[0].ErrorMessage)
}

func TestMarkPRReviewed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := seedRepo(t, s, "org-1")
	scan := &aidebt.Scan{ID: "scan-1", OrganizationID: "org-1", RepositoryID: repo.ID}
	require.NoError(t, s.Results().CreatePRResults(ctx, scan, []aidebt.PRResult{
		{Number: 7, Author: "alice"},
		{Number: 8, Author: "bob"},
	}))

	n, err := s.Results().MarkPRReviewed(ctx, "org-1", repo.ID, 7, "carol")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.Results().MarkPRReviewed(ctx, "org-1", repo.ID, 7, "carol")
	require.NoError(t, err)
	assert.Zero(t, n)

	prs, err := s.Results().ListPRResults(ctx, "org-1", "scan-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, prs, 2)
	assert.Equal(t, 8, prs[0].Number)
	assert.False(t, prs[0].HumanReviewed)
	assert.True(t, prs[1].HumanReviewed)
	assert.Equal(t, []string{"carol"}, prs[1].Reviewers)
	assert.Equal(t, 1, prs[1].ReviewCount)
}

func TestLatestRepositoryScores_SkipsDeactivated(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	active := seedRepo(t, s, "org-1")
	inactive := &storage.Repository{OrganizationID: "org-1", Owner: "acme", Name: "legacy"}
	require.NoError(t, s.Repositories().Create(ctx, inactive))

	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{active.ID, active.ID, inactive.ID} {
		repoID := id
		require.NoError(t, s.Scores().AppendDebtScore(ctx, &aidebt.AIDebtScore{
			OrganizationID: "org-1",
			RepositoryID:   &repoID,
			Score:          50 + i,
			CalculatedAt:   t0.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.Repositories().Deactivate(ctx, "org-1", inactive.ID))

	scores, err := s.Scores().LatestRepositoryScores(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 51, scores[0].Score)

	_, err = s.Scores().LatestDebtScore(ctx, "org-1", nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAlertTransition(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	alert := &aidebt.Alert{OrganizationID: "org-1", Severity: aidebt.SeverityHigh, Category: aidebt.CategoryScoreDrop}
	require.NoError(t, s.Alerts().Create(ctx, alert))

	at := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got, err := s.Alerts().Transition(ctx, "org-1", alert.ID, aidebt.AlertAcknowledged, at)
	require.NoError(t, err)
	assert.Equal(t, aidebt.AlertAcknowledged, got.Status)
	require.NotNil(t, got.AcknowledgedAt)
	assert.Equal(t, at, *got.AcknowledgedAt)

	_, err = s.Alerts().Transition(ctx, "org-1", alert.ID, aidebt.AlertResolved, at)
	assert.ErrorIs(t, err, storage.ErrInvalidTransition)

	_, err = s.Alerts().Transition(ctx, "org-2", alert.ID, aidebt.AlertResolved, at)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRepositories_DuplicateActiveRejected(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	first := seedRepo(t, s, "org-1")

	err := s.Repositories().Create(ctx, &storage.Repository{OrganizationID: "org-1", Owner: "ACME", Name: "API"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	require.NoError(t, s.Repositories().Deactivate(ctx, "org-1", first.ID))
	require.NoError(t, s.Repositories().Create(ctx, &storage.Repository{OrganizationID: "org-1", Owner: "acme", Name: "api"}))

	all, err := s.Repositories().ListByOrganization(ctx, "org-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	active, err := s.Repositories().ListActive(ctx, "org-1")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
