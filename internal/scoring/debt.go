// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package scoring turns governance metrics into debt, team and adoption scores.
// Every function here is pure.
package scoring

import (
	"math"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// DefaultWeights is the current debt score weight table. The weights must sum to 1.
var DefaultWeights = aidebt.DebtScoreWeights{
	AILOCRatio:            0.30,
	ReviewCoverage:        0.30,
	RefactorBacklogGrowth: 0.20,
	PromptInconsistency:   0.20,
}

// RiskZone classifies a score in [0,100]. Callers clamp first.
func RiskZone(score int) aidebt.RiskZone {
	switch {
	case score >= 80:
		return aidebt.ZoneHealthy
	case score >= 60:
		return aidebt.ZoneCaution
	default:
		return aidebt.ZoneCritical
	}
}

// DebtResult is the outcome of one debt score calculation
type DebtResult struct {
	Score     int
	Zone      aidebt.RiskZone
	Breakdown aidebt.DebtScoreBreakdown
}

// CalculateAIDebtScore scores in with DefaultWeights
func CalculateAIDebtScore(in aidebt.DebtScoreInput) DebtResult {
	return CalculateAIDebtScoreWithWeights(in, DefaultWeights)
}

// CalculateAIDebtScoreWithWeights scores in. Review coverage is inverted
// before weighting; every other input is penalized directly. Inputs outside
// [0,1] are not rejected, and a penalty above 100 clamps the score to 0.
func CalculateAIDebtScoreWithWeights(in aidebt.DebtScoreInput, w aidebt.DebtScoreWeights) DebtResult {
	penalty := (w.AILOCRatio*in.AILOCRatio +
		w.ReviewCoverage*(1-in.ReviewCoverage) +
		w.RefactorBacklogGrowth*in.RefactorBacklogGrowth +
		w.PromptInconsistency*in.PromptInconsistency) * 100

	score := clampInt(int(math.Round(100-penalty)), 0, 100)
	return DebtResult{
		Score: score,
		Zone:  RiskZone(score),
		Breakdown: aidebt.DebtScoreBreakdown{
			Inputs:  in,
			Weights: w,
			Penalty: penalty,
		},
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
