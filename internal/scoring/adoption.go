// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scoring

import (
	"math"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// Adoption weights; they sum to 100.
const (
	adoptionRateWeight   = 30
	adoptionGovernWeight = 40
	adoptionReviewWeight = 30
)

// CalculateAdoptionScore scores how healthily a team uses AI tooling
func CalculateAdoptionScore(totalMembers, membersUsingAI int, avgGovernanceScore, reviewCoverage float64) aidebt.AdoptionScore {
	rate := ratio(membersUsingAI, totalMembers)
	raw := math.Round(rate*adoptionRateWeight +
		(avgGovernanceScore/100)*adoptionGovernWeight +
		reviewCoverage*adoptionReviewWeight)

	return aidebt.AdoptionScore{
		Score:               clampInt(int(raw), 0, 100),
		AdoptionRate:        rate,
		TotalMembers:        totalMembers,
		MembersUsingAI:      membersUsingAI,
		AvgGovernanceScore:  avgGovernanceScore,
		ReviewCoverageRatio: reviewCoverage,
	}
}

// AdoptionFromSnapshots scores adoption over the latest snapshot of each
// developer. Review coverage is the share of AI pull requests that were not
// weakly reviewed, or 1 when there are none.
func AdoptionFromSnapshots(members []*aidebt.TeamMemberScore) aidebt.AdoptionScore {
	var (
		usingAI  int
		govTotal int
		aiPRs    int
		weak     int
	)
	for _, m := range members {
		govTotal += m.GovernanceScore
		aiPRs += m.AIPRs
		weak += m.AIPRsWithWeakReview
		if m.AIPRs > 0 {
			usingAI++
		}
	}

	avgGov := 0.0
	if len(members) > 0 {
		avgGov = float64(govTotal) / float64(len(members))
	}
	coverage := 1.0
	if aiPRs > 0 {
		coverage = 1 - ratio(weak, aiPRs)
	}
	return CalculateAdoptionScore(len(members), usingAI, avgGov, coverage)
}
