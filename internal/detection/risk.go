// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import "github.com/regrada-ai/aidebt-be/pkg/aidebt"

const (
	HighRiskThreshold   = 0.7
	MediumRiskThreshold = 0.4
)

// RiskLevel maps a probability in [0,1] to a risk tier. Callers clamp first.
func RiskLevel(probability float64) aidebt.RiskLevel {
	switch {
	case probability >= HighRiskThreshold:
		return aidebt.RiskHigh
	case probability >= MediumRiskThreshold:
		return aidebt.RiskMedium
	default:
		return aidebt.RiskLow
	}
}

func clamp01(v float64) float64 {
	if v != v { // NaN
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
