// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/source"
	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// ProcessNextPending claims the oldest pending scan and runs it. Retrying a
// crashed or timed-out scan goes through this entry point after a new scan
// is triggered.
func (o *Orchestrator) ProcessNextPending(ctx context.Context) ProcessResult {
	scan, err := o.scans.ClaimNextPending(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoPendingScan) {
			return ProcessResult{Success: true, Message: "no pending scans"}
		}
		o.log.WithError(err).Error("failed to claim pending scan")
		return ProcessResult{Error: err.Error(), Message: "failed to claim pending scan"}
	}
	return o.run(ctx, scan)
}

// ProcessScan claims a specific pending scan and runs it. Losing the claim
// to another worker is a no-op.
func (o *Orchestrator) ProcessScan(ctx context.Context, id string) ProcessResult {
	scan, err := o.scans.Claim(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrScanNotClaimable) {
			claimConflicts.Inc()
			return ProcessResult{Success: true, ScanID: id, Message: "scan is not pending"}
		}
		o.log.WithError(err).WithField("scan_id", id).Error("failed to claim scan")
		return ProcessResult{ScanID: id, Error: err.Error(), Message: "failed to claim scan"}
	}
	return o.run(ctx, scan)
}

func (o *Orchestrator) run(ctx context.Context, scan *aidebt.Scan) ProcessResult {
	log := o.log.WithFields(logrus.Fields{
		"scan_id":         scan.ID,
		"repository_id":   scan.RepositoryID,
		"organization_id": scan.OrganizationID,
		"scan_type":       scan.Type,
	})
	started := o.now()
	if scan.StartedAt != nil {
		started = *scan.StartedAt
	}

	log.Info("processing scan")
	summary, repo, err := o.analyzeRecovered(ctx, log, scan, started)
	if err != nil {
		return o.fail(ctx, log, scan, err)
	}

	finished := o.now()
	if err := o.scans.Complete(ctx, scan.ID, summary, finished); err != nil {
		if errors.Is(err, storage.ErrInvalidTransition) {
			log.Warn("scan left processing before completion")
			return ProcessResult{Processed: true, ScanID: scan.ID, Error: err.Error(), Message: "scan is no longer processing"}
		}
		return o.fail(ctx, log, scan, fmt.Errorf("failed to store summary: %w", err))
	}

	scan.Status = aidebt.ScanStatusCompleted
	scan.Progress = 100
	scan.Summary = summary
	scan.CompletedAt = &finished

	scansFinished.WithLabelValues(string(aidebt.ScanStatusCompleted)).Inc()
	scanDuration.WithLabelValues(string(scan.Type)).Observe(finished.Sub(started).Seconds())
	log.WithFields(logrus.Fields{
		"files":       summary.TotalFiles,
		"prs":         summary.TotalPRs,
		"ai_loc_pct":  summary.AILOCPercentage,
		"duration_ms": summary.DurationMS,
	}).Info("scan completed")

	o.afterCompletion(ctx, log, scan, repo)

	return ProcessResult{
		Processed: true,
		Success:   true,
		ScanID:    scan.ID,
		Status:    aidebt.ScanStatusCompleted,
		Summary:   summary,
		Message:   "scan completed",
	}
}

// analyzeRecovered turns a panic in the pipeline into an error so the scan
// is failed instead of left processing
func (o *Orchestrator) analyzeRecovered(ctx context.Context, log *logrus.Entry, scan *aidebt.Scan, started time.Time) (summary *aidebt.ScanSummary, repo *storage.Repository, err error) {
	defer func() {
		if r := recover(); r != nil {
			summary, repo, err = nil, nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return o.analyze(ctx, log, scan, started)
}

func (o *Orchestrator) analyze(ctx context.Context, log *logrus.Entry, scan *aidebt.Scan, started time.Time) (*aidebt.ScanSummary, *storage.Repository, error) {
	repo, err := o.repos.Get(ctx, scan.OrganizationID, scan.RepositoryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load repository: %w", err)
	}

	provider, err := o.sources.ForOrganization(ctx, scan.OrganizationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source provider: %w", err)
	}

	req := source.FetchRequest{
		Owner:    repo.Owner,
		Name:     repo.Name,
		Ref:      scan.Ref,
		Type:     scan.Type,
		PRNumber: scan.PRNumber,
		MaxFiles: o.cfg.MaxFiles,
		MaxPRs:   o.cfg.MaxPRs,
	}
	if req.Ref == "" {
		req.Ref = repo.DefaultBranch
	}
	if scan.Type == aidebt.ScanTypeIncremental {
		prev, err := o.scans.PreviousCompleted(ctx, scan.OrganizationID, scan.RepositoryID, scan.ID, aidebt.ScanTypeFull, aidebt.ScanTypeIncremental)
		if err == nil && prev.CompletedAt != nil {
			req.Since = prev.CompletedAt
		}
	}

	input, err := provider.Fetch(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s from %s: %w", repo.FullName(), provider.Name(), err)
	}
	o.progress(ctx, log, scan.ID, 30)

	files, err := o.detector.AnalyzeFiles(ctx, input.Files)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to analyze files: %w", err)
	}
	o.progress(ctx, log, scan.ID, 70)

	prs := o.detector.AnalyzePullRequests(input.PullRequests)

	summary := Aggregate(files, prs, input.Commits, started, o.now())
	if err := o.results.CreateFileResults(ctx, scan, files); err != nil {
		return nil, nil, fmt.Errorf("failed to store file results: %w", err)
	}
	if err := o.results.CreatePRResults(ctx, scan, prs); err != nil {
		return nil, nil, fmt.Errorf("failed to store pull request results: %w", err)
	}
	o.progress(ctx, log, scan.ID, 90)

	return &summary, repo, nil
}

func (o *Orchestrator) progress(ctx context.Context, log *logrus.Entry, id string, pct int) {
	if err := o.scans.UpdateProgress(ctx, id, pct); err != nil {
		log.WithError(err).Debug("failed to update progress")
	}
}

// fail records err on the scan and never returns it
func (o *Orchestrator) fail(ctx context.Context, log *logrus.Entry, scan *aidebt.Scan, err error) ProcessResult {
	msg := err.Error()
	log.WithError(err).Error("scan failed")

	// record the failure even when ctx is already canceled
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if ferr := o.scans.Fail(storeCtx, scan.ID, msg, o.now()); ferr != nil {
		log.WithError(ferr).Error("failed to record scan failure")
	}
	scansFinished.WithLabelValues(string(aidebt.ScanStatusFailed)).Inc()

	return ProcessResult{
		Processed: true,
		ScanID:    scan.ID,
		Status:    aidebt.ScanStatusFailed,
		Error:     msg,
		Message:   "scan failed",
	}
}
