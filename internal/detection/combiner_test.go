// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import (
	"testing"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
	"github.com/stretchr/testify/assert"
)

func uniformStyle(v float64) aidebt.StyleResult {
	return aidebt.StyleResult{Signals: aidebt.StyleSignals{
		CommentDensity: v, NamingConsistency: v, LineLengthUniformity: v, BoilerplateRatio: v,
		DocCommentCoverage: v, IndentationConsistency: v, BlankLineRegularity: v, GenericIdentifierRatio: v,
	}}
}

func TestRiskLevel_Boundaries(t *testing.T) {
	assert.Equal(t, aidebt.RiskHigh, RiskLevel(0.7))
	assert.Equal(t, aidebt.RiskMedium, RiskLevel(0.6999))
	assert.Equal(t, aidebt.RiskMedium, RiskLevel(0.4))
	assert.Equal(t, aidebt.RiskLow, RiskLevel(0.3999))
	assert.Equal(t, aidebt.RiskLow, RiskLevel(0))
	assert.Equal(t, aidebt.RiskHigh, RiskLevel(1))
}

func TestCombine_NoEvidence(t *testing.T) {
	r := Combine()

	assert.Equal(t, aidebt.DetectionMethodNone, r.Method)
	assert.Equal(t, 0.0, r.CombinedProbability)
	assert.Equal(t, aidebt.RiskLow, r.RiskLevel)
	assert.True(t, r.NeedsReview, "unscorable files must be flagged rather than silently low")
}

func TestCombine_StrongMetadataDominates(t *testing.T) {
	r := Combine(
		MetadataEvidence{Result: aidebt.MetadataResult{Matched: true, Confidence: 0.95, Source: "co-author-trailer"}},
		StyleEvidence{Result: uniformStyle(0)},
	)

	assert.Equal(t, aidebt.DetectionMethod("metadata+style"), r.Method)
	assert.GreaterOrEqual(t, r.CombinedProbability, 0.95)
	assert.Equal(t, aidebt.RiskHigh, r.RiskLevel)
	assert.False(t, r.NeedsReview)
}

func TestCombine_MLOutweighsStyle(t *testing.T) {
	mlHigh := Combine(
		StyleEvidence{Result: uniformStyle(0.2)},
		MLEvidence{Result: aidebt.MLResult{Probability: 0.9, ModelVersion: "m1"}},
	)
	styleHigh := Combine(
		StyleEvidence{Result: uniformStyle(0.9)},
		MLEvidence{Result: aidebt.MLResult{Probability: 0.2, ModelVersion: "m1"}},
	)

	assert.Equal(t, aidebt.DetectionMethod("style+ml"), mlHigh.Method)
	assert.Greater(t, mlHigh.CombinedProbability, styleHigh.CombinedProbability)
	assert.InDelta(t, 0.65*0.9+0.35*0.2, mlHigh.CombinedProbability, 1e-9)
}

func TestCombine_StyleOnlyIsDamped(t *testing.T) {
	r := Combine(StyleEvidence{Result: uniformStyle(1)})

	assert.Equal(t, aidebt.DetectionMethod("style"), r.Method)
	assert.InDelta(t, 0.8, r.CombinedProbability, 1e-9)
}

func TestCombine_WeakMetadataBlends(t *testing.T) {
	r := Combine(
		MetadataEvidence{Result: aidebt.MetadataResult{Matched: true, Confidence: 0.6}},
		MLEvidence{Result: aidebt.MLResult{Probability: 0.4}},
	)

	assert.Equal(t, aidebt.DetectionMethod("metadata+ml"), r.Method)
	assert.InDelta(t, 0.5, r.CombinedProbability, 1e-9)
	assert.Equal(t, aidebt.RiskMedium, r.RiskLevel)
}

func TestCombine_UnmatchedMetadataContributesNothing(t *testing.T) {
	r := Combine(MetadataEvidence{Result: aidebt.MetadataResult{Matched: false}})

	assert.Equal(t, aidebt.DetectionMethod("metadata"), r.Method)
	assert.Equal(t, 0.0, r.CombinedProbability)
	assert.False(t, r.NeedsReview)
}

func TestCombine_ClampsMalformedStyle(t *testing.T) {
	style := uniformStyle(0.5)
	style.Signals.CommentDensity = 7
	style.Signals.BoilerplateRatio = -3
	style.Score = 42

	r := Combine(StyleEvidence{Result: style})

	for _, v := range r.Style.Signals.Values() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.InDelta(t, (1+0+6*0.5)/8.0, r.Style.Score, 1e-9)
	assert.LessOrEqual(t, r.CombinedProbability, 1.0)
}

func TestCombine_ClampsMLProbability(t *testing.T) {
	r := Combine(MLEvidence{Result: aidebt.MLResult{Probability: 3}})

	assert.Equal(t, 1.0, r.CombinedProbability)
	assert.Equal(t, aidebt.RiskHigh, r.RiskLevel)
}

func TestCombine_IgnoresNilEvidence(t *testing.T) {
	r := Combine(nil, MLEvidence{Result: aidebt.MLResult{Probability: 0.1}})

	assert.Equal(t, aidebt.DetectionMethod("ml"), r.Method)
}
