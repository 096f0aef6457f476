// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scan

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regrada-ai/aidebt-be/internal/alerts"
	"github.com/regrada-ai/aidebt-be/internal/detection"
	"github.com/regrada-ai/aidebt-be/internal/source"
	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/internal/storage/memory"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

type fakeProvider struct {
	mu       sync.Mutex
	input    *source.ScanInput
	err      error
	panicMsg string
	requests []source.FetchRequest
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Fetch(_ context.Context, req source.FetchRequest) (*source.ScanInput, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.input, nil
}

func (p *fakeProvider) PullRequest(context.Context, string, string, int) (*source.PullRequestInput, error) {
	return nil, errors.New("not implemented")
}

type fakeFactory struct {
	provider *fakeProvider
	err      error
}

func (f *fakeFactory) ForOrganization(context.Context, string) (source.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.provider, nil
}

type fakeArchive struct {
	mu   sync.Mutex
	keys []string
}

func (a *fakeArchive) PutReport(_ context.Context, key string, _ []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys = append(a.keys, key)
	return nil
}

func (a *fakeArchive) ReportURL(context.Context, string, time.Duration) (string, error) {
	return "", nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

// sampleInput has one file with an AI co-author trailer, one file with no
// usable evidence and one AI-labelled PR merged without review.
func sampleInput() *source.ScanInput {
	merged := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &source.ScanInput{
		Commits: 4,
		Files: []source.FileInput{
			{
				Path:           "svc/handler.go",
				Language:       "Go",
				Content:        "a\nb\nc\n",
				CommitMessages: []string{"add handler\n\nCo-authored-by: GitHub Copilot <copilot@github.com>"},
			},
			{Path: "svc/util.go", Language: "Go", Content: "x\ny\nz\n"},
		},
		PullRequests: []source.PullRequestInput{
			{
				Number:    12,
				Title:     "Add handler",
				Author:    "alice",
				Labels:    []string{"ai-generated"},
				State:     aidebt.PRStateMerged,
				CreatedAt: merged.Add(-time.Hour),
				MergedAt:  &merged,
			},
		},
	}
}

type harness struct {
	store    *memory.Store
	provider *fakeProvider
	archive  *fakeArchive
	orch     *Orchestrator
	org      string
	repo     *storage.Repository
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	store := memory.NewStore()
	provider := &fakeProvider{input: sampleInput()}
	archive := &fakeArchive{}
	log := testLogger()

	orch := NewOrchestrator(Deps{
		Repositories: store.Repositories(),
		Scans:        store.Scans(),
		Results:      store.Results(),
		Scores:       store.Scores(),
		Sources:      &fakeFactory{provider: provider},
		Detector:     detection.NewDetector(nil, 2, log),
		Alerts:       alerts.NewService(alerts.NewEngine(alerts.Rules{}), store.Alerts(), nil, log),
		Archive:      archive,
	}, cfg, log)

	repo := &storage.Repository{OrganizationID: "org-1", Owner: "acme", Name: "api", DefaultBranch: "main"}
	require.NoError(t, store.Repositories().Create(context.Background(), repo))

	return &harness{store: store, provider: provider, archive: archive, orch: orch, org: "org-1", repo: repo}
}

func (h *harness) trigger(t *testing.T, typ aidebt.ScanType) string {
	t.Helper()
	res := h.orch.Trigger(context.Background(), TriggerRequest{OrganizationID: h.org, RepositoryID: h.repo.ID, Type: typ})
	require.True(t, res.Success, res.Message)
	require.Len(t, res.Scans, 1)
	return res.Scans[0].ScanID
}

func TestProcessNextPending_CompletesAndScores(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	id := h.trigger(t, aidebt.ScanTypeFull)

	res := h.orch.ProcessNextPending(ctx)
	require.True(t, res.Processed)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, id, res.ScanID)
	assert.Equal(t, aidebt.ScanStatusCompleted, res.Status)

	scan, err := h.store.Scans().Get(ctx, h.org, id)
	require.NoError(t, err)
	assert.Equal(t, aidebt.ScanStatusCompleted, scan.Status)
	assert.Equal(t, 100, scan.Progress)
	require.NotNil(t, scan.CompletedAt)
	require.NotNil(t, scan.Summary)

	s := scan.Summary
	assert.Equal(t, 4, s.TotalCommits)
	assert.Equal(t, 2, s.TotalFiles)
	assert.Equal(t, 6, s.TotalLOC)
	assert.Equal(t, 3, s.AILOC)
	assert.InDelta(t, 50.0, s.AILOCPercentage, 1e-9)
	assert.Equal(t, 1, s.HighRiskFiles)
	assert.Equal(t, 1, s.LowRiskFiles)
	assert.Equal(t, 1, s.FilesNeedingReview)
	assert.Equal(t, 1, s.AIPRs)
	assert.Equal(t, 1, s.UnreviewedAIMerges)

	files, err := h.store.Results().ListFileResults(ctx, h.org, id, 0, 0)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "svc/handler.go", files[0].Path)
	assert.Equal(t, aidebt.DetectionMethodNone, files[1].Detection.Method)

	repoID := h.repo.ID
	repoScore, err := h.store.Scores().LatestDebtScore(ctx, h.org, &repoID)
	require.NoError(t, err)
	assert.Equal(t, 45, repoScore.Score)
	assert.Equal(t, aidebt.ZoneCritical, repoScore.Zone)
	assert.Equal(t, 6, repoScore.Breakdown.BasisLOC)
	assert.InDelta(t, 0.5, repoScore.Breakdown.Inputs.AILOCRatio, 1e-9)

	orgScore, err := h.store.Scores().LatestDebtScore(ctx, h.org, nil)
	require.NoError(t, err)
	assert.Equal(t, repoScore.Score, orgScore.Score)
	assert.Nil(t, orgScore.RepositoryID)

	team, err := h.store.Scores().LatestTeamScores(ctx, h.org)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "alice", team[0].Developer)
	assert.Equal(t, aidebt.UsageHigh, team[0].UsageLevel)
	assert.Equal(t, aidebt.RiskHigh, team[0].RiskIndex)

	raised, err := h.store.Alerts().List(ctx, h.org, storage.AlertFilter{})
	require.NoError(t, err)
	var cats []aidebt.AlertCategory
	for _, a := range raised {
		cats = append(cats, a.Category)
	}
	assert.ElementsMatch(t, []aidebt.AlertCategory{
		aidebt.CategoryZoneDowngrade, // repository
		aidebt.CategoryUnreviewedMerges,
		aidebt.CategoryZoneDowngrade, // organization
	}, cats)

	assert.Equal(t, []string{storage.ReportKey(h.org, h.repo.ID, id)}, h.archive.keys)
}

func TestProcessNextPending_EmptyQueue(t *testing.T) {
	h := newHarness(t, Config{})

	res := h.orch.ProcessNextPending(context.Background())
	assert.False(t, res.Processed)
	assert.True(t, res.Success)
	assert.Equal(t, "no pending scans", res.Message)
}

func TestProcess_SourceFailureFailsScan(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	h.provider.err = source.ErrRateLimited
	id := h.trigger(t, aidebt.ScanTypeFull)

	res := h.orch.ProcessNextPending(ctx)
	assert.True(t, res.Processed)
	assert.False(t, res.Success)
	assert.Equal(t, aidebt.ScanStatusFailed, res.Status)
	assert.Contains(t, res.Error, source.ErrRateLimited.Error())

	scan, err := h.store.Scans().Get(ctx, h.org, id)
	require.NoError(t, err)
	assert.Equal(t, aidebt.ScanStatusFailed, scan.Status)
	assert.Contains(t, scan.ErrorMessage, "acme/api")
	assert.Nil(t, scan.Summary)

	_, err = h.store.Scores().LatestDebtScore(ctx, h.org, nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProcess_MissingCredentialFailsScan(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	h.orch.sources = &fakeFactory{err: source.ErrNoCredential}
	id := h.trigger(t, aidebt.ScanTypeFull)

	res := h.orch.ProcessNextPending(ctx)
	assert.False(t, res.Success)

	scan, err := h.store.Scans().Get(ctx, h.org, id)
	require.NoError(t, err)
	assert.Equal(t, aidebt.ScanStatusFailed, scan.Status)
	assert.Contains(t, scan.ErrorMessage, source.ErrNoCredential.Error())
}

func TestProcess_PanicFailsScan(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	h.provider.panicMsg = "boom"
	id := h.trigger(t, aidebt.ScanTypeFull)

	var res ProcessResult
	require.NotPanics(t, func() { res = h.orch.ProcessNextPending(ctx) })
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "boom")

	scan, err := h.store.Scans().Get(ctx, h.org, id)
	require.NoError(t, err)
	assert.Equal(t, aidebt.ScanStatusFailed, scan.Status)
}

func TestProcessScan_ConcurrentClaimsProcessOnce(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.trigger(t, aidebt.ScanTypeFull)

	var (
		wg      sync.WaitGroup
		results = make([]ProcessResult, 4)
	)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = h.orch.ProcessScan(context.Background(), id)
		}()
	}
	wg.Wait()

	processed := 0
	for _, r := range results {
		assert.True(t, r.Success)
		if r.Processed {
			processed++
		}
	}
	assert.Equal(t, 1, processed)
	assert.Len(t, h.provider.requests, 1)
}

func TestProcess_IncrementalFetchesSincePreviousScan(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{MaxFiles: 50})
	h.trigger(t, aidebt.ScanTypeFull)
	require.True(t, h.orch.ProcessNextPending(ctx).Success)

	h.trigger(t, aidebt.ScanTypeIncremental)
	require.True(t, h.orch.ProcessNextPending(ctx).Success)

	require.Len(t, h.provider.requests, 2)
	assert.Nil(t, h.provider.requests[0].Since)
	assert.NotNil(t, h.provider.requests[1].Since)
	assert.Equal(t, "main", h.provider.requests[1].Ref)
	assert.Equal(t, 50, h.provider.requests[1].MaxFiles)

	// incremental scans cover a slice of the repository and leave scores alone
	raised, err := h.store.Alerts().List(ctx, h.org, storage.AlertFilter{})
	require.NoError(t, err)
	assert.Len(t, raised, 3)

	history, err := h.store.Scores().ListDebtScores(ctx, h.org, &h.repo.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestProcess_IncrementalSinceIgnoresPRScans(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	full := h.trigger(t, aidebt.ScanTypeFull)
	require.True(t, h.orch.ProcessNextPending(ctx).Success)

	ev := h.orch.HandleEvent(ctx, h.repo, Event{Kind: EventPullRequest, Action: "opened", PRNumber: 12})
	require.Equal(t, "queued", ev.Action)
	require.True(t, h.orch.ProcessNextPending(ctx).Success)

	h.trigger(t, aidebt.ScanTypeIncremental)
	require.True(t, h.orch.ProcessNextPending(ctx).Success)

	fullScan, err := h.store.Scans().Get(ctx, h.org, full)
	require.NoError(t, err)
	require.Len(t, h.provider.requests, 3)
	require.NotNil(t, h.provider.requests[2].Since)
	assert.True(t, fullScan.CompletedAt.Equal(*h.provider.requests[2].Since))
}

func TestProcess_PartialScansKeepFullScanBaseline(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	h.trigger(t, aidebt.ScanTypeFull)
	require.True(t, h.orch.ProcessNextPending(ctx).Success)

	repoID := h.repo.ID
	first, err := h.store.Scores().LatestDebtScore(ctx, h.org, &repoID)
	require.NoError(t, err)

	opened := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	h.provider.input = &source.ScanInput{
		PullRequests: []source.PullRequestInput{
			{Number: 13, Title: "Fix typo", Author: "bob", State: aidebt.PRStateOpen, CreatedAt: opened},
		},
	}
	ev := h.orch.HandleEvent(ctx, h.repo, Event{Kind: EventPullRequest, Action: "opened", PRNumber: 13})
	require.Equal(t, "queued", ev.Action)
	require.True(t, h.orch.ProcessNextPending(ctx).Success)

	latest, err := h.store.Scores().LatestDebtScore(ctx, h.org, &repoID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID, "a PR scan does not replace the repository score")

	team, err := h.store.Scores().LatestTeamScores(ctx, h.org)
	require.NoError(t, err)
	assert.Len(t, team, 2)

	h.provider.input = sampleInput()
	h.trigger(t, aidebt.ScanTypeFull)
	require.True(t, h.orch.ProcessNextPending(ctx).Success)

	history, err := h.store.Scores().ListDebtScores(ctx, h.org, &repoID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.GreaterOrEqual(t, history[0].Score, first.Score)
	assert.Zero(t, history[0].Breakdown.Inputs.RefactorBacklogGrowth)

	raised, err := h.store.Alerts().List(ctx, h.org, storage.AlertFilter{})
	require.NoError(t, err)
	counts := map[aidebt.AlertCategory]int{}
	for _, a := range raised {
		counts[a.Category]++
	}
	assert.Equal(t, map[aidebt.AlertCategory]int{
		aidebt.CategoryZoneDowngrade:    2,
		aidebt.CategoryUnreviewedMerges: 1,
	}, counts)
}

type panickingArchive struct{}

func (panickingArchive) PutReport(context.Context, string, []byte) error { panic("archive down") }

func (panickingArchive) ReportURL(context.Context, string, time.Duration) (string, error) {
	return "", nil
}

func TestProcess_PanicAfterCompletionKeepsResult(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	h.orch.archive = panickingArchive{}
	id := h.trigger(t, aidebt.ScanTypeFull)

	var res ProcessResult
	require.NotPanics(t, func() { res = h.orch.ProcessNextPending(ctx) })
	assert.True(t, res.Success)
	assert.Equal(t, aidebt.ScanStatusCompleted, res.Status)

	scan, err := h.store.Scans().Get(ctx, h.org, id)
	require.NoError(t, err)
	assert.Equal(t, aidebt.ScanStatusCompleted, scan.Status)
	assert.Empty(t, scan.ErrorMessage)
}

func TestTrigger_AllActiveRepositories(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	other := &storage.Repository{OrganizationID: h.org, Owner: "acme", Name: "web"}
	require.NoError(t, h.store.Repositories().Create(ctx, other))
	gone := &storage.Repository{OrganizationID: h.org, Owner: "acme", Name: "legacy"}
	require.NoError(t, h.store.Repositories().Create(ctx, gone))
	require.NoError(t, h.store.Repositories().Deactivate(ctx, h.org, gone.ID))

	res := h.orch.Trigger(ctx, TriggerRequest{OrganizationID: h.org})
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Queued)
	assert.Zero(t, res.Failed)
	assert.Equal(t, "queued 2 of 2 scans", res.Message)

	pending, err := h.store.Scans().List(ctx, h.org, storage.ScanFilter{Status: aidebt.ScanStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	for _, s := range pending {
		assert.Equal(t, aidebt.ScanTypeFull, s.Type)
		assert.Equal(t, TriggerManual, s.Trigger)
	}
}

func TestTrigger_Errors(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})

	res := h.orch.Trigger(ctx, TriggerRequest{OrganizationID: h.org, RepositoryID: "missing"})
	assert.False(t, res.Success)
	assert.Equal(t, CodeNotFound, res.Code)

	res = h.orch.Trigger(ctx, TriggerRequest{OrganizationID: "org-2", RepositoryID: h.repo.ID})
	assert.Equal(t, CodeNotFound, res.Code, "repositories of other organizations are invisible")

	res = h.orch.Trigger(ctx, TriggerRequest{OrganizationID: h.org, RepositoryID: h.repo.ID, Type: "nightly"})
	assert.Equal(t, CodeInvalidRequest, res.Code)

	res = h.orch.Trigger(ctx, TriggerRequest{OrganizationID: h.org, RepositoryID: h.repo.ID, Type: aidebt.ScanTypePR})
	assert.Equal(t, CodeInvalidRequest, res.Code)

	require.NoError(t, h.store.Repositories().Deactivate(ctx, h.org, h.repo.ID))
	res = h.orch.Trigger(ctx, TriggerRequest{OrganizationID: h.org, RepositoryID: h.repo.ID})
	assert.Equal(t, CodeInactive, res.Code)

	res = h.orch.Trigger(ctx, TriggerRequest{OrganizationID: h.org})
	assert.True(t, res.Success)
	assert.Zero(t, res.Queued)
}

type flakyScans struct {
	storage.ScanRepository
	failFor string
}

func (f *flakyScans) Create(ctx context.Context, scan *aidebt.Scan) error {
	if scan.RepositoryID == f.failFor {
		return errors.New("insert failed")
	}
	return f.ScanRepository.Create(ctx, scan)
}

func TestTrigger_ReportsPartialFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	other := &storage.Repository{OrganizationID: h.org, Owner: "acme", Name: "web"}
	require.NoError(t, h.store.Repositories().Create(ctx, other))
	h.orch.scans = &flakyScans{ScanRepository: h.store.Scans(), failFor: other.ID}

	res := h.orch.Trigger(ctx, TriggerRequest{OrganizationID: h.org})
	assert.False(t, res.Success)
	assert.Equal(t, CodeQueueFailed, res.Code)
	assert.Equal(t, 1, res.Queued)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, "queued 1 of 2 scans", res.Message)
}

func TestTriggerScheduled(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	require.NoError(t, h.store.Repositories().Create(ctx, &storage.Repository{OrganizationID: "org-2", Owner: "beta", Name: "app"}))

	res, err := h.orch.TriggerScheduled(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Queued)

	scans, err := h.store.Scans().List(ctx, "org-2", storage.ScanFilter{})
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, TriggerSchedule, scans[0].Trigger)
}

func TestHandleEvent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})

	res := h.orch.HandleEvent(ctx, h.repo, Event{Kind: EventPush, Ref: "refs/heads/main"})
	require.Equal(t, "queued", res.Action)
	scan, err := h.store.Scans().Get(ctx, h.org, res.ScanID)
	require.NoError(t, err)
	assert.Equal(t, aidebt.ScanTypeIncremental, scan.Type)
	assert.Equal(t, TriggerWebhook, scan.Trigger)
	assert.Equal(t, "refs/heads/main", scan.Ref)

	for _, action := range []string{"opened", "closed", "reopened"} {
		res = h.orch.HandleEvent(ctx, h.repo, Event{Kind: EventPullRequest, Action: action, PRNumber: 12})
		require.Equal(t, "queued", res.Action, action)
		scan, err = h.store.Scans().Get(ctx, h.org, res.ScanID)
		require.NoError(t, err)
		assert.Equal(t, aidebt.ScanTypePR, scan.Type)
		assert.Equal(t, 12, scan.PRNumber)
	}

	res = h.orch.HandleEvent(ctx, h.repo, Event{Kind: EventPullRequest, Action: "edited", PRNumber: 12})
	assert.Equal(t, "ignored", res.Action)

	res = h.orch.HandleEvent(ctx, h.repo, Event{Kind: "issues"})
	assert.Equal(t, "ignored", res.Action)
}

func TestHandleEvent_DuplicateDeliveryQueuesTwice(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	ev := Event{Kind: EventPush, Ref: "refs/heads/main"}

	first := h.orch.HandleEvent(ctx, h.repo, ev)
	second := h.orch.HandleEvent(ctx, h.repo, ev)
	assert.Equal(t, "queued", first.Action)
	assert.Equal(t, "queued", second.Action)
	assert.NotEqual(t, first.ScanID, second.ScanID)
}

func TestHandleEvent_ReviewMarksPRReviewed(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{})
	h.trigger(t, aidebt.ScanTypeFull)
	res := h.orch.ProcessNextPending(ctx)
	require.True(t, res.Success)

	ignored := h.orch.HandleEvent(ctx, h.repo, Event{
		Kind: EventPullRequestReview, Action: "submitted", PRNumber: 12,
		PRAuthor: "alice", Reviewer: "alice", ReviewState: "approved",
	})
	assert.Equal(t, "ignored", ignored.Action)

	ignored = h.orch.HandleEvent(ctx, h.repo, Event{
		Kind: EventPullRequestReview, Action: "submitted", PRNumber: 12,
		PRAuthor: "alice", Reviewer: "dependabot[bot]", ReviewerBot: true, ReviewState: "approved",
	})
	assert.Equal(t, "ignored", ignored.Action)

	reviewed := h.orch.HandleEvent(ctx, h.repo, Event{
		Kind: EventPullRequestReview, Action: "submitted", PRNumber: 12,
		PRAuthor: "alice", Reviewer: "bob", ReviewState: "APPROVED",
	})
	assert.Equal(t, "reviewed", reviewed.Action)
	assert.Equal(t, 1, reviewed.Updated)

	prs, err := h.store.Results().ListPRResults(ctx, h.org, res.ScanID, 0, 0)
	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.True(t, prs[0].HumanReviewed)
	assert.Equal(t, []string{"bob"}, prs[0].Reviewers)
}

func TestHandleEvent_InactiveRepositoryIgnored(t *testing.T) {
	h := newHarness(t, Config{})
	h.repo.IsActive = false

	res := h.orch.HandleEvent(context.Background(), h.repo, Event{Kind: EventPush})
	assert.Equal(t, "ignored", res.Action)
}

func TestFailStale(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, Config{StaleTimeout: 10 * time.Minute})
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.store.SetClock(func() time.Time { return start })
	id := h.trigger(t, aidebt.ScanTypeFull)
	_, err := h.store.Scans().Claim(ctx, id)
	require.NoError(t, err)

	h.orch.now = func() time.Time { return start.Add(5 * time.Minute) }
	n, err := h.orch.FailStale(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	h.orch.now = func() time.Time { return start.Add(11 * time.Minute) }
	n, err = h.orch.FailStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	scan, err := h.store.Scans().Get(ctx, h.org, id)
	require.NoError(t, err)
	assert.Equal(t, aidebt.ScanStatusFailed, scan.Status)
	assert.Equal(t, StaleScanMessage, scan.ErrorMessage)
}

func TestFailStale_DisabledWithoutTimeout(t *testing.T) {
	h := newHarness(t, Config{})
	n, err := h.orch.FailStale(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
