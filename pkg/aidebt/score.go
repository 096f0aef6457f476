package aidebt

import "time"

// RiskZone is the three-tier classification of a debt score
type RiskZone string

const (
	ZoneHealthy  RiskZone = "healthy"
	ZoneCaution  RiskZone = "caution"
	ZoneCritical RiskZone = "critical"
)

// Rank orders zones from healthiest (0) to worst (2)
func (z RiskZone) Rank() int {
	switch z {
	case ZoneHealthy:
		return 0
	case ZoneCaution:
		return 1
	default:
		return 2
	}
}

// DebtScoreInput holds the four normalized governance ratios, each expected in [0,1]
type DebtScoreInput struct {
	AILOCRatio            float64 `json:"ai_loc_ratio"`
	ReviewCoverage        float64 `json:"review_coverage"`
	RefactorBacklogGrowth float64 `json:"refactor_backlog_growth"`
	PromptInconsistency   float64 `json:"prompt_inconsistency"`
}

// DebtScoreWeights is the weight vector applied to the inputs
type DebtScoreWeights struct {
	AILOCRatio            float64 `json:"ai_loc_ratio"`
	ReviewCoverage        float64 `json:"review_coverage"`
	RefactorBacklogGrowth float64 `json:"refactor_backlog_growth"`
	PromptInconsistency   float64 `json:"prompt_inconsistency"`
}

// Sum returns the total of all weights
func (w DebtScoreWeights) Sum() float64 {
	return w.AILOCRatio + w.ReviewCoverage + w.RefactorBacklogGrowth + w.PromptInconsistency
}

// DebtScoreBreakdown makes a score snapshot self-describing
type DebtScoreBreakdown struct {
	Inputs  DebtScoreInput   `json:"inputs"`
	Weights DebtScoreWeights `json:"weights"`
	Penalty float64          `json:"total_penalty"`
	// BasisLOC is the lines of code the inputs were measured over; it weights
	// repository snapshots in the organization roll-up.
	BasisLOC int `json:"basis_loc"`
}

// AIDebtScore is one scored snapshot for an organization (RepositoryID nil) or a repository
type AIDebtScore struct {
	ID             string             `json:"id,omitempty"`
	OrganizationID string             `json:"organization_id"`
	RepositoryID   *string            `json:"repository_id,omitempty"`
	ScanID         *string            `json:"scan_id,omitempty"`
	Score          int                `json:"score"`
	Zone           RiskZone           `json:"risk_zone"`
	Breakdown      DebtScoreBreakdown `json:"breakdown"`
	CalculatedAt   time.Time          `json:"calculated_at"`
}

// UsageLevel is how heavily a developer relies on AI-generated pull requests
type UsageLevel string

const (
	UsageLow    UsageLevel = "low"
	UsageMedium UsageLevel = "medium"
	UsageHigh   UsageLevel = "high"
)

// ReviewQuality is how much a developer reviews relative to their PR volume
type ReviewQuality string

const (
	ReviewWeak     ReviewQuality = "weak"
	ReviewModerate ReviewQuality = "moderate"
	ReviewStrong   ReviewQuality = "strong"
)

// TeamMemberScore is one developer's per-period governance snapshot
type TeamMemberScore struct {
	ID                  string        `json:"id,omitempty"`
	OrganizationID      string        `json:"organization_id"`
	Developer           string        `json:"developer"`
	Period              time.Time     `json:"period"`
	UsageLevel          UsageLevel    `json:"ai_usage_level"`
	ReviewQuality       ReviewQuality `json:"review_quality"`
	RiskIndex           RiskLevel     `json:"risk_index"`
	GovernanceScore     int           `json:"governance_score"`
	AIPRs               int           `json:"ai_prs"`
	TotalPRs            int           `json:"total_prs"`
	ReviewsGiven        int           `json:"reviews_given"`
	AIPRsWithWeakReview int           `json:"ai_prs_with_weak_review"`
	CalculatedAt        time.Time     `json:"calculated_at"`
}

// AdoptionScore summarizes how healthily a team has adopted AI tooling
type AdoptionScore struct {
	Score               int     `json:"score"`
	AdoptionRate        float64 `json:"adoption_rate"`
	TotalMembers        int     `json:"total_members"`
	MembersUsingAI      int     `json:"members_using_ai"`
	AvgGovernanceScore  float64 `json:"avg_governance_score"`
	ReviewCoverageRatio float64 `json:"review_coverage"`
}
