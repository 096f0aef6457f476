// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/regrada-ai/aidebt-be/internal/alerts"
	"github.com/regrada-ai/aidebt-be/internal/api/middleware"
	"github.com/regrada-ai/aidebt-be/internal/scan"
	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/internal/storage/memory"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeScanner struct {
	mu          sync.Mutex
	trigger     scan.TriggerResult
	triggered   []scan.TriggerRequest
	process     scan.ProcessResult
	processed   []string
	nextCalls   int
	eventResult scan.EventResult
	events      []scan.Event
}

func (f *fakeScanner) Trigger(_ context.Context, req scan.TriggerRequest) scan.TriggerResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggered = append(f.triggered, req)
	return f.trigger
}

func (f *fakeScanner) ProcessNextPending(context.Context) scan.ProcessResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextCalls++
	return f.process
}

func (f *fakeScanner) ProcessScan(_ context.Context, id string) scan.ProcessResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, id)
	return f.process
}

func (f *fakeScanner) HandleEvent(_ context.Context, _ *storage.Repository, ev scan.Event) scan.EventResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.eventResult
}

type fakeArchive struct {
	keys []string
}

func (f *fakeArchive) PutReport(context.Context, string, []byte) error { return nil }

func (f *fakeArchive) ReportURL(_ context.Context, key string, _ time.Duration) (string, error) {
	f.keys = append(f.keys, key)
	return "https://reports.example.com/" + key, nil
}

type fakeKeyCache struct {
	invalidated []string
}

func (f *fakeKeyCache) InvalidateKey(_ context.Context, keyHash string) {
	f.invalidated = append(f.invalidated, keyHash)
}

type harness struct {
	t       *testing.T
	store   *memory.Store
	scanner *fakeScanner
	archive *fakeArchive
	cache   *fakeKeyCache
	orgID   string
	router  *gin.Engine
}

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	org := &storage.Organization{Name: "Acme", Slug: "acme", Tier: "team"}
	require.NoError(t, store.Organizations().Create(context.Background(), org))

	h := &harness{
		t:       t,
		store:   store,
		scanner: &fakeScanner{},
		archive: &fakeArchive{},
		cache:   &fakeKeyCache{},
		orgID:   org.ID,
	}
	h.router = h.buildRouter(h.archive)
	return h
}

func (h *harness) buildRouter(archive storage.ReportArchive) *gin.Engine {
	log := testLog()
	alertService := alerts.NewService(alerts.NewEngine(alerts.Rules{}), h.store.Alerts(), nil, log)

	repoHandler := NewRepositoryHandler(h.store.Repositories(), log)
	scanHandler := NewScanHandler(h.scanner, h.store.Scans(), h.store.Results(), archive, time.Minute, log)
	scoreHandler := NewScoreHandler(h.store.Scores(), h.store.Repositories(), log)
	alertHandler := NewAlertHandler(h.store.Alerts(), alertService, log)
	orgHandler := NewOrganizationHandler(h.store.Organizations(), log)
	keyHandler := NewAPIKeyHandler(h.store.APIKeys(), h.store.Organizations(), h.cache, log)
	webhookHandler := NewWebhookHandler(h.store.Repositories(), h.scanner, log)

	r := gin.New()
	r.POST("/webhooks/github/:repositoryID", webhookHandler.GitHubWebhook)

	v1 := r.Group("/v1", func(c *gin.Context) {
		if org := c.GetHeader("X-Test-Org"); org != "" {
			c.Set(middleware.ContextOrganizationID, org)
		} else {
			c.Set(middleware.ContextOrganizationID, h.orgID)
		}
	})
	v1.POST("/repositories", repoHandler.ConnectRepository)
	v1.GET("/repositories", repoHandler.ListRepositories)
	v1.GET("/repositories/:repositoryID", repoHandler.GetRepository)
	v1.DELETE("/repositories/:repositoryID", repoHandler.DeactivateRepository)

	v1.POST("/scans", scanHandler.TriggerScan)
	v1.GET("/scans", scanHandler.ListScans)
	v1.POST("/scans/process-next", scanHandler.ProcessNext)
	v1.GET("/scans/:scanID", scanHandler.GetScan)
	v1.GET("/scans/:scanID/files", scanHandler.ListFileResults)
	v1.GET("/scans/:scanID/pull-requests", scanHandler.ListPRResults)
	v1.GET("/scans/:scanID/report", scanHandler.GetReportURL)
	v1.POST("/scans/:scanID/process", scanHandler.ProcessScan)

	v1.GET("/scores/debt", scoreHandler.GetDebtScore)
	v1.GET("/scores/debt/history", scoreHandler.ListDebtScoreHistory)
	v1.GET("/scores/repositories", scoreHandler.ListRepositoryScores)
	v1.GET("/scores/team", scoreHandler.ListTeamScores)
	v1.GET("/scores/adoption", scoreHandler.GetAdoptionScore)

	v1.GET("/alerts", alertHandler.ListAlerts)
	v1.GET("/alerts/:alertID", alertHandler.GetAlert)
	v1.POST("/alerts/:alertID/acknowledge", alertHandler.AcknowledgeAlert)
	v1.POST("/alerts/:alertID/dismiss", alertHandler.DismissAlert)
	v1.POST("/alerts/:alertID/resolve", alertHandler.ResolveAlert)

	v1.GET("/organizations/current", orgHandler.GetCurrentOrganization)
	v1.PUT("/organizations/current", orgHandler.UpdateCurrentOrganization)

	v1.GET("/api-keys", keyHandler.ListAPIKeys)
	v1.POST("/api-keys", keyHandler.CreateAPIKey)
	v1.DELETE("/api-keys/:keyID", keyHandler.RevokeAPIKey)
	return r
}

func (h *harness) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (h *harness) repository(owner, name string) *storage.Repository {
	h.t.Helper()
	repo := &storage.Repository{
		OrganizationID: h.orgID,
		Owner:          owner,
		Name:           name,
		DefaultBranch:  "main",
		WebhookSecret:  "whsec_test",
	}
	require.NoError(h.t, h.store.Repositories().Create(context.Background(), repo))
	return repo
}

func (h *harness) scan(repo *storage.Repository) *aidebt.Scan {
	h.t.Helper()
	s := &aidebt.Scan{
		OrganizationID: repo.OrganizationID,
		RepositoryID:   repo.ID,
		Type:           aidebt.ScanTypeFull,
		Trigger:        scan.TriggerManual,
	}
	require.NoError(h.t, h.store.Scans().Create(context.Background(), s))
	return s
}

func (h *harness) completedScan(repo *storage.Repository) *aidebt.Scan {
	h.t.Helper()
	ctx := context.Background()
	s := h.scan(repo)
	_, err := h.store.Scans().Claim(ctx, s.ID)
	require.NoError(h.t, err)
	require.NoError(h.t, h.store.Scans().Complete(ctx, s.ID, &aidebt.ScanSummary{TotalFiles: 2}, time.Now()))
	return s
}
