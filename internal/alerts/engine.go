// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package alerts evaluates governance rules against fresh scores and scan
// summaries and manages alert status.
package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// DefaultScoreDropThreshold is the point drop between consecutive snapshots
// that must be exceeded to raise an alert
const DefaultScoreDropThreshold = 15

// Rules configures the engine
type Rules struct {
	ScoreDropThreshold int
}

// Evaluation is one scoring event. Previous values are nil when there is no history.
type Evaluation struct {
	OrganizationID  string
	RepositoryID    *string
	ScanID          *string
	Subject         string
	PreviousScore   *aidebt.AIDebtScore
	CurrentScore    *aidebt.AIDebtScore
	PreviousSummary *aidebt.ScanSummary
	CurrentSummary  *aidebt.ScanSummary
	At              time.Time
}

// Engine turns evaluations into new alerts. It holds no state between calls.
type Engine struct {
	rules Rules
}

func NewEngine(rules Rules) *Engine {
	if rules.ScoreDropThreshold <= 0 {
		rules.ScoreDropThreshold = DefaultScoreDropThreshold
	}
	return &Engine{rules: rules}
}

type alertKey struct {
	category aidebt.AlertCategory
	repo     string
}

// Evaluate returns the alerts an evaluation raises, at most one per
// (category, repository). Returned alerts are always new records in the
// active state.
func (e *Engine) Evaluate(ev Evaluation) []*aidebt.Alert {
	var (
		out  []*aidebt.Alert
		seen = make(map[alertKey]bool)
	)
	add := func(a *aidebt.Alert) {
		key := alertKey{category: a.Category}
		if ev.RepositoryID != nil {
			key.repo = *ev.RepositoryID
		}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, a)
	}

	if a := e.zoneDowngrade(ev); a != nil {
		add(a)
	}
	if a := e.scoreDrop(ev); a != nil {
		add(a)
	}
	if a := e.unreviewedMerges(ev); a != nil {
		add(a)
	}
	return out
}

func (e *Engine) zoneDowngrade(ev Evaluation) *aidebt.Alert {
	cur := ev.CurrentScore
	if cur == nil {
		return nil
	}

	var from aidebt.RiskZone
	if prev := ev.PreviousScore; prev != nil {
		if cur.Zone.Rank() <= prev.Zone.Rank() {
			return nil
		}
		from = prev.Zone
	} else if cur.Zone != aidebt.ZoneCritical {
		return nil
	}

	desc := fmt.Sprintf("AI debt score of %s is %d, now in the %s zone", ev.subject(), cur.Score, cur.Zone)
	if from != "" {
		desc = fmt.Sprintf("AI debt score of %s moved from the %s zone to the %s zone (score %d)", ev.subject(), from, cur.Zone, cur.Score)
	}
	return ev.alert(aidebt.SeverityHigh, aidebt.CategoryZoneDowngrade,
		fmt.Sprintf("Risk zone downgraded to %s", cur.Zone), desc,
		map[string]any{
			"previous_zone": from,
			"current_zone":  cur.Zone,
			"score":         cur.Score,
		})
}

func (e *Engine) scoreDrop(ev Evaluation) *aidebt.Alert {
	cur, prev := ev.CurrentScore, ev.PreviousScore
	if cur == nil || prev == nil {
		return nil
	}
	drop := prev.Score - cur.Score
	if drop <= e.rules.ScoreDropThreshold {
		return nil
	}

	return ev.alert(aidebt.SeverityHigh, aidebt.CategoryScoreDrop,
		fmt.Sprintf("AI debt score dropped by %d points", drop),
		fmt.Sprintf("AI debt score of %s fell from %d to %d", ev.subject(), prev.Score, cur.Score),
		map[string]any{
			"previous_score": prev.Score,
			"current_score":  cur.Score,
			"drop":           drop,
			"threshold":      e.rules.ScoreDropThreshold,
		})
}

func (e *Engine) unreviewedMerges(ev Evaluation) *aidebt.Alert {
	cur := ev.CurrentSummary
	if cur == nil {
		return nil
	}
	before := 0
	if ev.PreviousSummary != nil {
		before = ev.PreviousSummary.UnreviewedAIMerges
	}
	if cur.UnreviewedAIMerges <= before {
		return nil
	}

	return ev.alert(aidebt.SeverityMedium, aidebt.CategoryUnreviewedMerges,
		fmt.Sprintf("%d AI-generated PRs merged without human review", cur.UnreviewedAIMerges),
		fmt.Sprintf("Unreviewed AI-generated merges in %s rose from %d to %d", ev.subject(), before, cur.UnreviewedAIMerges),
		map[string]any{
			"previous_unreviewed_ai_merges": before,
			"current_unreviewed_ai_merges":  cur.UnreviewedAIMerges,
		})
}

func (ev Evaluation) subject() string {
	if ev.Subject != "" {
		return ev.Subject
	}
	if ev.RepositoryID == nil {
		return "the organization"
	}
	return "the repository"
}

func (ev Evaluation) alert(sev aidebt.AlertSeverity, cat aidebt.AlertCategory, title, desc string, details map[string]any) *aidebt.Alert {
	raw, _ := json.Marshal(details)
	return &aidebt.Alert{
		OrganizationID: ev.OrganizationID,
		RepositoryID:   ev.RepositoryID,
		ScanID:         ev.ScanID,
		Severity:       sev,
		Category:       cat,
		Title:          title,
		Description:    desc,
		Status:         aidebt.AlertActive,
		Context:        raw,
		CreatedAt:      ev.At,
	}
}
