// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scoring

import (
	"fmt"
	"math"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// Inconsistency describes inputs that violate a scorer's preconditions.
// The score is still computed from clamped values.
type Inconsistency struct {
	Field  string
	Value  int
	Limit  int
	Reason string
}

func (i Inconsistency) String() string {
	return fmt.Sprintf("%s=%d exceeds %d: %s", i.Field, i.Value, i.Limit, i.Reason)
}

// MemberStats are one developer's pull request counts for a period
type MemberStats struct {
	AIPRs               int
	TotalPRs            int
	ReviewsGiven        int
	AIPRsWithWeakReview int
}

// MemberResult is the outcome of scoring one developer
type MemberResult struct {
	UsageLevel      aidebt.UsageLevel
	ReviewQuality   aidebt.ReviewQuality
	RiskIndex       aidebt.RiskLevel
	GovernanceScore int
	Inconsistencies []Inconsistency
}

// CalculateTeamMemberScore scores one developer. All tier thresholds are
// strict: a value exactly on a boundary falls into the lower tier.
func CalculateTeamMemberScore(aiPRs, totalPRs, reviewedByThisPerson, aiPRsWithWeakReview int) MemberResult {
	var issues []Inconsistency
	aiPRs, totalPRs, reviewedByThisPerson, aiPRsWithWeakReview =
		max(aiPRs, 0), max(totalPRs, 0), max(reviewedByThisPerson, 0), max(aiPRsWithWeakReview, 0)

	if aiPRs > totalPRs {
		issues = append(issues, Inconsistency{"ai_prs", aiPRs, totalPRs, "more AI PRs than PRs"})
		aiPRs = totalPRs
	}
	if aiPRsWithWeakReview > aiPRs {
		issues = append(issues, Inconsistency{"ai_prs_with_weak_review", aiPRsWithWeakReview, aiPRs, "more weakly reviewed AI PRs than AI PRs"})
		aiPRsWithWeakReview = aiPRs
	}

	aiRatio := ratio(aiPRs, totalPRs)
	reviewRatio := ratio(reviewedByThisPerson, totalPRs)
	weakRatio := ratio(aiPRsWithWeakReview, aiPRs)

	usage := aidebt.UsageLow
	switch {
	case aiRatio > 0.6:
		usage = aidebt.UsageHigh
	case aiRatio > 0.3:
		usage = aidebt.UsageMedium
	}

	quality := aidebt.ReviewWeak
	switch {
	case reviewRatio > 0.5:
		quality = aidebt.ReviewStrong
	case reviewRatio > 0.25:
		quality = aidebt.ReviewModerate
	}

	risk := aidebt.RiskLow
	switch {
	case weakRatio > 0.5:
		risk = aidebt.RiskHigh
	case weakRatio > 0.25:
		risk = aidebt.RiskMedium
	}

	governance := math.Round((1-weakRatio)*50 + reviewRatio*30 + (1-aiRatio*0.3)*20)

	return MemberResult{
		UsageLevel:      usage,
		ReviewQuality:   quality,
		RiskIndex:       risk,
		GovernanceScore: clampInt(int(governance), 0, 100),
		Inconsistencies: issues,
	}
}
