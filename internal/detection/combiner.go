// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import (
	"strings"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

const (
	// StrongMetadataConfidence is the confidence at which a metadata match
	// is treated as near ground truth.
	StrongMetadataConfidence = 0.8
	strongMetadataFloor      = 0.95

	mlWeight       = 0.65
	styleWeight    = 0.35
	styleOnlyDamp  = 0.8
	weakMetaWeight = 0.5
)

type combination struct {
	metadata *aidebt.MetadataResult
	style    *aidebt.StyleResult
	ml       *aidebt.MLResult
}

// Combine merges the available evidence for one file into a DetectionResult.
// It never fails: with no evidence the result is probability 0, risk low,
// method "none" and NeedsReview set.
func Combine(evidence ...Evidence) aidebt.DetectionResult {
	var c combination
	for _, e := range evidence {
		if e != nil {
			e.apply(&c)
		}
	}

	method := c.method()
	if method == aidebt.DetectionMethodNone {
		return aidebt.DetectionResult{
			CombinedProbability: 0,
			RiskLevel:           aidebt.RiskLow,
			Method:              aidebt.DetectionMethodNone,
			NeedsReview:         true,
		}
	}

	p := clamp01(c.probability())
	return aidebt.DetectionResult{
		CombinedProbability: p,
		RiskLevel:           RiskLevel(p),
		Method:              method,
		Metadata:            c.metadata,
		Style:               c.style,
		ML:                  c.ml,
	}
}

func (c *combination) method() aidebt.DetectionMethod {
	var parts []string
	if c.metadata != nil {
		parts = append(parts, "metadata")
	}
	if c.style != nil {
		parts = append(parts, "style")
	}
	if c.ml != nil {
		parts = append(parts, "ml")
	}
	if len(parts) == 0 {
		return aidebt.DetectionMethodNone
	}
	return aidebt.DetectionMethod(strings.Join(parts, "+"))
}

func (c *combination) probability() float64 {
	blend, hasBlend := c.blend()

	if c.metadata == nil || !c.metadata.Matched {
		return blend
	}

	conf := c.metadata.Confidence
	if conf >= StrongMetadataConfidence {
		return max(strongMetadataFloor, conf, blend)
	}
	if !hasBlend {
		return conf
	}
	return weakMetaWeight*conf + (1-weakMetaWeight)*blend
}

// blend combines the style and ML signals. ML outweighs style; style on its
// own is damped because it is only a weak heuristic.
func (c *combination) blend() (float64, bool) {
	switch {
	case c.style != nil && c.ml != nil:
		return mlWeight*c.ml.Probability + styleWeight*c.style.Score, true
	case c.ml != nil:
		return c.ml.Probability, true
	case c.style != nil:
		return styleOnlyDamp * c.style.Score, true
	}
	return 0, false
}
