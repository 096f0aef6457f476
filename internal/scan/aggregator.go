// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scan

import (
	"time"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// Aggregate folds the file and PR results of one scan into its summary.
// Apart from DurationMS the summary depends only on files, prs and commits.
func Aggregate(files []aidebt.FileResult, prs []aidebt.PRResult, commits int, startedAt, finishedAt time.Time) aidebt.ScanSummary {
	s := aidebt.ScanSummary{
		TotalCommits: commits,
		TotalPRs:     len(prs),
		TotalFiles:   len(files),
		FileResults:  files,
		PRResults:    prs,
	}

	for _, f := range files {
		total := max(f.TotalLines, 0)
		s.TotalLOC += total
		s.AILOC += min(max(f.AILines, 0), total)

		switch f.RiskLevel {
		case aidebt.RiskHigh:
			s.HighRiskFiles++
		case aidebt.RiskMedium:
			s.MediumRiskFiles++
		default:
			s.LowRiskFiles++
		}
		if f.Detection.NeedsReview {
			s.FilesNeedingReview++
		}
	}
	if s.TotalLOC > 0 {
		s.AILOCPercentage = 100 * float64(s.AILOC) / float64(s.TotalLOC)
	}

	for _, pr := range prs {
		if !pr.AIGenerated {
			continue
		}
		s.AIPRs++
		if pr.HumanReviewed {
			s.ReviewedAIPRs++
			continue
		}
		s.UnreviewedAIPRs++
		if pr.State == aidebt.PRStateMerged {
			s.UnreviewedAIMerges++
		}
	}

	if !startedAt.IsZero() && finishedAt.After(startedAt) {
		s.DurationMS = finishedAt.Sub(startedAt).Milliseconds()
	}
	return s
}
