// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scan

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/alerts"
	"github.com/regrada-ai/aidebt-be/internal/scoring"
	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// afterCompletion appends repository, organization and team snapshots and
// evaluates alerts. The scan is already completed; failures here are logged.
// Only full scans cover the whole repository, so only they move the debt
// score and serve as the baseline for the next one. Incremental and PR scans
// contribute team snapshots.
func (o *Orchestrator) afterCompletion(ctx context.Context, log *logrus.Entry, scan *aidebt.Scan, repo *storage.Repository) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("post-completion processing panicked")
		}
	}()

	at := *scan.CompletedAt
	summary := scan.Summary

	if scan.Type == aidebt.ScanTypeFull {
		o.scoreRepository(ctx, log, scan, repo, at)
		o.scoreOrganization(ctx, log, scan, at)
	}
	o.scoreTeam(ctx, log, scan.OrganizationID, summary.PRResults, at)
	o.archiveReport(ctx, log, scan)
}

func (o *Orchestrator) scoreRepository(ctx context.Context, log *logrus.Entry, scan *aidebt.Scan, repo *storage.Repository, at time.Time) {
	summary := scan.Summary

	var prevSummary *aidebt.ScanSummary
	prev, err := o.scans.PreviousCompleted(ctx, scan.OrganizationID, scan.RepositoryID, scan.ID, aidebt.ScanTypeFull)
	switch {
	case err == nil:
		prevSummary = prev.Summary
	case !errors.Is(err, storage.ErrNotFound):
		log.WithError(err).Warn("failed to load previous scan")
	}

	repoID := repo.ID
	scanID := scan.ID
	input := scoring.DeriveDebtInput(*summary, prevSummary)
	repoScore, prevRepoScore, err := o.appendScore(ctx, scan.OrganizationID, &repoID, &scanID, input, summary.TotalLOC, at)
	if err != nil {
		log.WithError(err).Error("failed to store repository score")
		return
	}
	log.WithFields(logrus.Fields{"score": repoScore.Score, "zone": repoScore.Zone}).Info("repository scored")
	o.raise(ctx, log, alerts.Evaluation{
		OrganizationID:  scan.OrganizationID,
		RepositoryID:    &repoID,
		ScanID:          &scanID,
		Subject:         repo.FullName(),
		PreviousScore:   prevRepoScore,
		CurrentScore:    repoScore,
		PreviousSummary: prevSummary,
		CurrentSummary:  summary,
		At:              at,
	})
}

// appendScore stores a new snapshot and returns it with the snapshot it supersedes
func (o *Orchestrator) appendScore(ctx context.Context, orgID string, repoID, scanID *string, input aidebt.DebtScoreInput, basisLOC int, at time.Time) (*aidebt.AIDebtScore, *aidebt.AIDebtScore, error) {
	prev, err := o.scores.LatestDebtScore(ctx, orgID, repoID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, nil, err
		}
		prev = nil
	}

	res := scoring.CalculateAIDebtScore(input)
	res.Breakdown.BasisLOC = basisLOC
	score := &aidebt.AIDebtScore{
		OrganizationID: orgID,
		RepositoryID:   repoID,
		ScanID:         scanID,
		Score:          res.Score,
		Zone:           res.Zone,
		Breakdown:      res.Breakdown,
		CalculatedAt:   at,
	}
	if err := o.scores.AppendDebtScore(ctx, score); err != nil {
		return nil, nil, err
	}
	return score, prev, nil
}

func (o *Orchestrator) scoreOrganization(ctx context.Context, log *logrus.Entry, scan *aidebt.Scan, at time.Time) {
	latest, err := o.scores.LatestRepositoryScores(ctx, scan.OrganizationID)
	if err != nil {
		log.WithError(err).Error("failed to load repository scores")
		return
	}

	inputs := make([]scoring.WeightedInput, len(latest))
	basis := 0
	for i, s := range latest {
		inputs[i] = scoring.WeightedInput{Input: s.Breakdown.Inputs, TotalLOC: s.Breakdown.BasisLOC}
		basis += s.Breakdown.BasisLOC
	}
	input, ok := scoring.RollUp(inputs)
	if !ok {
		return
	}

	scanID := scan.ID
	orgScore, prevOrgScore, err := o.appendScore(ctx, scan.OrganizationID, nil, &scanID, input, basis, at)
	if err != nil {
		log.WithError(err).Error("failed to store organization score")
		return
	}
	log.WithFields(logrus.Fields{"score": orgScore.Score, "zone": orgScore.Zone}).Info("organization scored")

	o.raise(ctx, log, alerts.Evaluation{
		OrganizationID: scan.OrganizationID,
		ScanID:         &scanID,
		PreviousScore:  prevOrgScore,
		CurrentScore:   orgScore,
		At:             at,
	})
}

func (o *Orchestrator) scoreTeam(ctx context.Context, log *logrus.Entry, orgID string, prs []aidebt.PRResult, at time.Time) {
	team := scoring.ScoreTeam(prs)
	if len(team.Members) == 0 {
		return
	}

	period := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	snapshots := make([]*aidebt.TeamMemberScore, 0, len(team.Members))
	for _, m := range team.Members {
		for _, inc := range m.Result.Inconsistencies {
			log.WithFields(logrus.Fields{
				"developer": m.Developer,
				"field":     inc.Field,
				"value":     inc.Value,
				"limit":     inc.Limit,
			}).Warn("inconsistent team member stats: " + inc.Reason)
		}
		snapshots = append(snapshots, &aidebt.TeamMemberScore{
			OrganizationID:      orgID,
			Developer:           m.Developer,
			Period:              period,
			UsageLevel:          m.Result.UsageLevel,
			ReviewQuality:       m.Result.ReviewQuality,
			RiskIndex:           m.Result.RiskIndex,
			GovernanceScore:     m.Result.GovernanceScore,
			AIPRs:               m.Stats.AIPRs,
			TotalPRs:            m.Stats.TotalPRs,
			ReviewsGiven:        m.Stats.ReviewsGiven,
			AIPRsWithWeakReview: m.Stats.AIPRsWithWeakReview,
			CalculatedAt:        at,
		})
	}

	if err := o.scores.AppendTeamScores(ctx, snapshots); err != nil {
		log.WithError(err).Error("failed to store team scores")
		return
	}
	log.WithFields(logrus.Fields{
		"members":        len(snapshots),
		"adoption_score": team.Adoption.Score,
	}).Info("team scored")
}

func (o *Orchestrator) raise(ctx context.Context, log *logrus.Entry, ev alerts.Evaluation) {
	if o.alerts == nil {
		return
	}
	if _, err := o.alerts.Raise(ctx, ev); err != nil {
		log.WithError(err).Error("failed to raise alerts")
	}
}

// Report is the archived form of a completed scan
type Report struct {
	Scan    *aidebt.Scan        `json:"scan"`
	Summary *aidebt.ScanSummary `json:"summary"`
}

func (o *Orchestrator) archiveReport(ctx context.Context, log *logrus.Entry, scan *aidebt.Scan) {
	if o.archive == nil {
		return
	}

	meta := *scan
	meta.Summary = nil
	body, err := json.Marshal(Report{Scan: &meta, Summary: scan.Summary})
	if err != nil {
		log.WithError(err).Error("failed to encode scan report")
		return
	}

	key := storage.ReportKey(scan.OrganizationID, scan.RepositoryID, scan.ID)
	if err := o.archive.PutReport(ctx, key, body); err != nil {
		log.WithError(err).WithField("key", key).Error("failed to archive scan report")
	}
}
