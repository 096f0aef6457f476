package aidebt

// DetectionMethod names which signals contributed to a DetectionResult,
// e.g. "metadata", "style+ml", "metadata+style+ml" or "none".
type DetectionMethod string

const DetectionMethodNone DetectionMethod = "none"

// DetectionResult is the combined evidence for one file or pull request
type DetectionResult struct {
	CombinedProbability float64         `json:"combined_probability"`
	RiskLevel           RiskLevel       `json:"risk_level"`
	Method              DetectionMethod `json:"detection_method"`
	NeedsReview         bool            `json:"needs_review,omitempty"`
	Metadata            *MetadataResult `json:"metadata,omitempty"`
	Style               *StyleResult    `json:"style,omitempty"`
	ML                  *MLResult       `json:"ml,omitempty"`
}

// MetadataResult reports whether commit/PR metadata names an AI tool
type MetadataResult struct {
	Matched    bool    `json:"matched"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source,omitempty"`
}

// StyleSignals are the eight stylistic sub-signals, each in [0,1]
type StyleSignals struct {
	CommentDensity         float64 `json:"comment_density"`
	NamingConsistency      float64 `json:"naming_consistency"`
	LineLengthUniformity   float64 `json:"line_length_uniformity"`
	BoilerplateRatio       float64 `json:"boilerplate_ratio"`
	DocCommentCoverage     float64 `json:"doc_comment_coverage"`
	IndentationConsistency float64 `json:"indentation_consistency"`
	BlankLineRegularity    float64 `json:"blank_line_regularity"`
	GenericIdentifierRatio float64 `json:"generic_identifier_ratio"`
}

// Values returns the sub-signals in a fixed order
func (s StyleSignals) Values() [8]float64 {
	return [8]float64{
		s.CommentDensity,
		s.NamingConsistency,
		s.LineLengthUniformity,
		s.BoilerplateRatio,
		s.DocCommentCoverage,
		s.IndentationConsistency,
		s.BlankLineRegularity,
		s.GenericIdentifierRatio,
	}
}

// StyleResult is the stylistic fingerprint of a file
type StyleResult struct {
	Score   float64      `json:"score"`
	Signals StyleSignals `json:"signals"`
}

// MLResult is the output of an external classifier
type MLResult struct {
	Probability  float64  `json:"probability"`
	ModelVersion string   `json:"model_version"`
	Features     []string `json:"features,omitempty"`
}
