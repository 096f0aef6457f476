// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scoring

import (
	"math"
	"sort"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// DeriveDebtInput builds the debt score input for a repository from its
// latest summary and, when available, the previous completed scan's summary.
func DeriveDebtInput(current aidebt.ScanSummary, previous *aidebt.ScanSummary) aidebt.DebtScoreInput {
	coverage := 1.0
	if current.AIPRs > 0 {
		coverage = ratio(current.ReviewedAIPRs, current.AIPRs)
	}

	var growth float64
	if previous == nil {
		growth = ratio(current.HighRiskFiles, current.TotalFiles)
	} else {
		growth = ratio(current.HighRiskFiles-previous.HighRiskFiles, max(previous.HighRiskFiles, 1))
	}

	return aidebt.DebtScoreInput{
		AILOCRatio:            clamp01(ratio(current.AILOC, current.TotalLOC)),
		ReviewCoverage:        clamp01(coverage),
		RefactorBacklogGrowth: clamp01(growth),
		PromptInconsistency:   promptInconsistency(current.FileResults),
	}
}

// promptInconsistency is twice the standard deviation of style scores across
// AI-attributed files: assistants driven by inconsistent prompts leave
// inconsistent fingerprints.
func promptInconsistency(files []aidebt.FileResult) float64 {
	var scores []float64
	for _, f := range files {
		if f.AILines > 0 && f.Detection.Style != nil {
			scores = append(scores, f.Detection.Style.Score)
		}
	}
	if len(scores) < 2 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))
	var sq float64
	for _, s := range scores {
		sq += (s - mean) * (s - mean)
	}
	return clamp01(2 * math.Sqrt(sq/float64(len(scores))))
}

// WeightedInput is one repository's latest input and its size
type WeightedInput struct {
	Input    aidebt.DebtScoreInput
	TotalLOC int
}

// RollUp combines repository inputs into an organization-level input,
// weighting each repository by its total lines of code. Returns false when
// there is nothing to roll up.
func RollUp(inputs []WeightedInput) (aidebt.DebtScoreInput, bool) {
	if len(inputs) == 0 {
		return aidebt.DebtScoreInput{}, false
	}

	var total float64
	for _, in := range inputs {
		total += float64(max(in.TotalLOC, 0))
	}

	var out aidebt.DebtScoreInput
	for _, in := range inputs {
		w := 1 / float64(len(inputs))
		if total > 0 {
			w = float64(max(in.TotalLOC, 0)) / total
		}
		out.AILOCRatio += w * in.Input.AILOCRatio
		out.ReviewCoverage += w * in.Input.ReviewCoverage
		out.RefactorBacklogGrowth += w * in.Input.RefactorBacklogGrowth
		out.PromptInconsistency += w * in.Input.PromptInconsistency
	}
	return out, true
}

// MemberStatsFromPRs counts per-developer statistics from a set of PR
// results. Reviews given are credited to every listed reviewer.
func MemberStatsFromPRs(prs []aidebt.PRResult) map[string]MemberStats {
	stats := make(map[string]MemberStats)
	for _, pr := range prs {
		if pr.Author != "" {
			s := stats[pr.Author]
			s.TotalPRs++
			if pr.AIGenerated {
				s.AIPRs++
				if !pr.HumanReviewed {
					s.AIPRsWithWeakReview++
				}
			}
			stats[pr.Author] = s
		}
		for _, reviewer := range pr.Reviewers {
			s := stats[reviewer]
			s.ReviewsGiven++
			stats[reviewer] = s
		}
	}
	return stats
}

// TeamResult is the outcome of scoring every developer in a PR set
type TeamResult struct {
	Members  []MemberScore
	Adoption aidebt.AdoptionScore
}

// MemberScore pairs a developer with their stats and result
type MemberScore struct {
	Developer string
	Stats     MemberStats
	Result    MemberResult
}

// ScoreTeam scores each developer and the team's adoption. Members are
// returned sorted by developer name.
func ScoreTeam(prs []aidebt.PRResult) TeamResult {
	stats := MemberStatsFromPRs(prs)

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		members     []MemberScore
		usingAI     int
		govTotal    int
		aiPRs       int
		reviewedAIs int
	)
	for _, name := range names {
		s := stats[name]
		r := CalculateTeamMemberScore(s.AIPRs, s.TotalPRs, s.ReviewsGiven, s.AIPRsWithWeakReview)
		members = append(members, MemberScore{Developer: name, Stats: s, Result: r})
		govTotal += r.GovernanceScore
		if s.AIPRs > 0 {
			usingAI++
		}
	}
	for _, pr := range prs {
		if pr.AIGenerated {
			aiPRs++
			if pr.HumanReviewed {
				reviewedAIs++
			}
		}
	}

	avgGov := 0.0
	if len(members) > 0 {
		avgGov = float64(govTotal) / float64(len(members))
	}
	coverage := 1.0
	if aiPRs > 0 {
		coverage = ratio(reviewedAIs, aiPRs)
	}

	return TeamResult{
		Members:  members,
		Adoption: CalculateAdoptionScore(len(members), usingAI, avgGov, coverage),
	}
}
