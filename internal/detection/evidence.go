// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import "github.com/regrada-ai/aidebt-be/pkg/aidebt"

// Evidence is one independently computed signal about a file.
// The set of implementations is closed: MetadataEvidence, StyleEvidence, MLEvidence.
type Evidence interface {
	// Kind is the name used in the detection method tag
	Kind() string
	apply(*combination)
}

type MetadataEvidence struct{ Result aidebt.MetadataResult }

type StyleEvidence struct{ Result aidebt.StyleResult }

type MLEvidence struct{ Result aidebt.MLResult }

func (MetadataEvidence) Kind() string { return "metadata" }
func (StyleEvidence) Kind() string    { return "style" }
func (MLEvidence) Kind() string       { return "ml" }

func (e MetadataEvidence) apply(c *combination) {
	r := e.Result
	r.Confidence = clamp01(r.Confidence)
	c.metadata = &r
}

func (e StyleEvidence) apply(c *combination) {
	r := normalizeStyle(e.Result)
	c.style = &r
}

func (e MLEvidence) apply(c *combination) {
	r := e.Result
	r.Probability = clamp01(r.Probability)
	c.ml = &r
}

// normalizeStyle clamps every sub-signal into [0,1] and recomputes the
// aggregate as their mean.
func normalizeStyle(r aidebt.StyleResult) aidebt.StyleResult {
	s := r.Signals
	s.CommentDensity = clamp01(s.CommentDensity)
	s.NamingConsistency = clamp01(s.NamingConsistency)
	s.LineLengthUniformity = clamp01(s.LineLengthUniformity)
	s.BoilerplateRatio = clamp01(s.BoilerplateRatio)
	s.DocCommentCoverage = clamp01(s.DocCommentCoverage)
	s.IndentationConsistency = clamp01(s.IndentationConsistency)
	s.BlankLineRegularity = clamp01(s.BlankLineRegularity)
	s.GenericIdentifierRatio = clamp01(s.GenericIdentifierRatio)

	var sum float64
	values := s.Values()
	for _, v := range values {
		sum += v
	}
	return aidebt.StyleResult{Score: sum / float64(len(values)), Signals: s}
}
