// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package scan drives repository scans from trigger to completion and
// feeds completed scans into scoring and alerting.
package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/alerts"
	"github.com/regrada-ai/aidebt-be/internal/detection"
	"github.com/regrada-ai/aidebt-be/internal/source"
	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// StaleScanMessage is recorded on scans failed by the watchdog
const StaleScanMessage = "processing timed out"

// Config tunes scan processing
type Config struct {
	MaxFiles     int
	MaxPRs       int
	StaleTimeout time.Duration
}

// Deps are the collaborators of an Orchestrator. Archive and Alerts may be nil.
type Deps struct {
	Repositories storage.RepositoryRepository
	Scans        storage.ScanRepository
	Results      storage.ResultRepository
	Scores       storage.ScoreRepository
	Sources      source.Factory
	Detector     *detection.Detector
	Alerts       *alerts.Service
	Archive      storage.ReportArchive
}

type Orchestrator struct {
	repos    storage.RepositoryRepository
	scans    storage.ScanRepository
	results  storage.ResultRepository
	scores   storage.ScoreRepository
	sources  source.Factory
	detector *detection.Detector
	alerts   *alerts.Service
	archive  storage.ReportArchive
	cfg      Config
	now      func() time.Time
	log      *logrus.Entry
}

func NewOrchestrator(deps Deps, cfg Config, log *logrus.Entry) *Orchestrator {
	return &Orchestrator{
		repos:    deps.Repositories,
		scans:    deps.Scans,
		results:  deps.Results,
		scores:   deps.Scores,
		sources:  deps.Sources,
		detector: deps.Detector,
		alerts:   deps.Alerts,
		archive:  deps.Archive,
		cfg:      cfg,
		now:      time.Now,
		log:      log,
	}
}

// Trigger creates pending scans. Each scan is queued independently; the
// result counts successes and failures.
func (o *Orchestrator) Trigger(ctx context.Context, req TriggerRequest) TriggerResult {
	if req.Type == "" {
		req.Type = aidebt.ScanTypeFull
	}
	if !req.Type.Valid() {
		return TriggerResult{Code: CodeInvalidRequest, Message: fmt.Sprintf("unknown scan type %q", req.Type), Scans: []QueuedScan{}}
	}
	if req.Type == aidebt.ScanTypePR && req.PRNumber <= 0 {
		return TriggerResult{Code: CodeInvalidRequest, Message: "pr_scan requires a pull request number", Scans: []QueuedScan{}}
	}
	if req.Trigger == "" {
		req.Trigger = TriggerManual
	}

	var repos []*storage.Repository
	if req.RepositoryID != "" {
		repo, err := o.repos.Get(ctx, req.OrganizationID, req.RepositoryID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return TriggerResult{Code: CodeNotFound, Message: "repository not found", Scans: []QueuedScan{}}
			}
			return TriggerResult{Code: CodeQueueFailed, Message: "failed to load repository", Failed: 1, Scans: []QueuedScan{}}
		}
		if !repo.IsActive {
			return TriggerResult{Code: CodeInactive, Message: "repository is inactive", Scans: []QueuedScan{}}
		}
		repos = []*storage.Repository{repo}
	} else {
		active, err := o.repos.ListActive(ctx, req.OrganizationID)
		if err != nil {
			o.log.WithError(err).WithField("organization_id", req.OrganizationID).Error("failed to list active repositories")
			return TriggerResult{Code: CodeQueueFailed, Message: "failed to list active repositories", Scans: []QueuedScan{}}
		}
		if len(active) == 0 {
			return TriggerResult{Success: true, Message: "no active repositories", Scans: []QueuedScan{}}
		}
		repos = active
	}

	result := TriggerResult{Scans: []QueuedScan{}}
	for _, repo := range repos {
		scan := &aidebt.Scan{
			OrganizationID: req.OrganizationID,
			RepositoryID:   repo.ID,
			Type:           req.Type,
			Trigger:        req.Trigger,
			Ref:            req.Ref,
			PRNumber:       req.PRNumber,
		}
		if err := o.scans.Create(ctx, scan); err != nil {
			result.Failed++
			o.log.WithError(err).WithFields(logrus.Fields{
				"organization_id": req.OrganizationID,
				"repository_id":   repo.ID,
			}).Error("failed to queue scan")
			continue
		}
		result.Queued++
		result.Scans = append(result.Scans, QueuedScan{ScanID: scan.ID, RepositoryID: repo.ID})
		scansQueued.WithLabelValues(req.Trigger, string(req.Type)).Inc()
	}

	result.Success = result.Failed == 0
	result.Message = fmt.Sprintf("queued %d of %d scans", result.Queued, len(repos))
	if !result.Success {
		result.Code = CodeQueueFailed
	}
	return result
}

// TriggerScheduled queues a full scan of every active repository of every organization
func (o *Orchestrator) TriggerScheduled(ctx context.Context) (TriggerResult, error) {
	orgs, err := o.repos.ListOrganizationsWithActive(ctx)
	if err != nil {
		return TriggerResult{}, fmt.Errorf("failed to list organizations: %w", err)
	}

	total := TriggerResult{Success: true, Scans: []QueuedScan{}}
	for _, orgID := range orgs {
		res := o.Trigger(ctx, TriggerRequest{OrganizationID: orgID, Type: aidebt.ScanTypeFull, Trigger: TriggerSchedule})
		total.Queued += res.Queued
		total.Failed += res.Failed
		total.Scans = append(total.Scans, res.Scans...)
		if !res.Success {
			total.Success = false
			total.Code = CodeQueueFailed
		}
	}
	total.Message = fmt.Sprintf("queued %d scans across %d organizations", total.Queued, len(orgs))
	return total, nil
}

var prScanActions = map[string]bool{
	"opened":   true,
	"closed":   true,
	"reopened": true,
}

var humanReviewStates = map[string]bool{
	"approved":          true,
	"changes_requested": true,
	"commented":         true,
}

// HandleEvent routes a verified webhook event. Redelivered events queue
// another scan; that is tolerated rather than deduplicated.
func (o *Orchestrator) HandleEvent(ctx context.Context, repo *storage.Repository, ev Event) EventResult {
	if !repo.IsActive {
		return EventResult{Action: "ignored", Message: "repository is inactive"}
	}

	switch ev.Kind {
	case EventPush:
		return o.queueFromEvent(ctx, repo, TriggerRequest{Type: aidebt.ScanTypeIncremental, Ref: ev.Ref})
	case EventPullRequest:
		if !prScanActions[ev.Action] {
			return EventResult{Action: "ignored", Message: fmt.Sprintf("pull_request action %q is not scanned", ev.Action)}
		}
		return o.queueFromEvent(ctx, repo, TriggerRequest{Type: aidebt.ScanTypePR, Ref: ev.Ref, PRNumber: ev.PRNumber})
	case EventPullRequestReview:
		return o.markReviewed(ctx, repo, ev)
	}
	return EventResult{Action: "ignored", Message: fmt.Sprintf("event %q is not handled", ev.Kind)}
}

func (o *Orchestrator) queueFromEvent(ctx context.Context, repo *storage.Repository, req TriggerRequest) EventResult {
	req.OrganizationID = repo.OrganizationID
	req.RepositoryID = repo.ID
	req.Trigger = TriggerWebhook

	res := o.Trigger(ctx, req)
	if !res.Success || len(res.Scans) == 0 {
		return EventResult{Action: "ignored", Message: res.Message}
	}
	return EventResult{Action: "queued", ScanID: res.Scans[0].ScanID, Message: res.Message}
}

func (o *Orchestrator) markReviewed(ctx context.Context, repo *storage.Repository, ev Event) EventResult {
	if ev.Action != "" && ev.Action != "submitted" {
		return EventResult{Action: "ignored", Message: fmt.Sprintf("review action %q is not tracked", ev.Action)}
	}
	if ev.ReviewerBot || ev.Reviewer == "" || strings.EqualFold(ev.Reviewer, ev.PRAuthor) {
		return EventResult{Action: "ignored", Message: "review is not a human review"}
	}
	if !humanReviewStates[strings.ToLower(ev.ReviewState)] {
		return EventResult{Action: "ignored", Message: fmt.Sprintf("review state %q is not tracked", ev.ReviewState)}
	}

	n, err := o.results.MarkPRReviewed(ctx, repo.OrganizationID, repo.ID, ev.PRNumber, ev.Reviewer)
	if err != nil {
		o.log.WithError(err).WithFields(logrus.Fields{
			"repository_id": repo.ID,
			"pr_number":     ev.PRNumber,
		}).Error("failed to mark pull request reviewed")
		return EventResult{Action: "ignored", Message: "failed to record review"}
	}
	return EventResult{Action: "reviewed", Updated: n, Message: fmt.Sprintf("marked %d pull request results reviewed", n)}
}

// FailStale fails scans stuck in processing longer than the configured
// timeout. It is a no-op when no timeout is configured. Failed scans are
// retried by triggering a new scan.
func (o *Orchestrator) FailStale(ctx context.Context) (int, error) {
	if o.cfg.StaleTimeout <= 0 {
		return 0, nil
	}

	stale, err := o.scans.FailStale(ctx, o.now().Add(-o.cfg.StaleTimeout), StaleScanMessage)
	if err != nil {
		return 0, fmt.Errorf("failed to fail stale scans: %w", err)
	}
	for _, s := range stale {
		scansFinished.WithLabelValues(string(aidebt.ScanStatusFailed)).Inc()
		o.log.WithFields(logrus.Fields{
			"scan_id":         s.ID,
			"repository_id":   s.RepositoryID,
			"organization_id": s.OrganizationID,
		}).Warn("failed stale scan")
	}
	return len(stale), nil
}
