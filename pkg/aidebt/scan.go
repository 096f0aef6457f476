package aidebt

import "time"

// ScanType identifies what part of a repository a scan covers
type ScanType string

const (
	ScanTypeFull        ScanType = "full"
	ScanTypeIncremental ScanType = "incremental"
	ScanTypePR          ScanType = "pr_scan"
)

// Valid reports whether t is a known scan type
func (t ScanType) Valid() bool {
	switch t {
	case ScanTypeFull, ScanTypeIncremental, ScanTypePR:
		return true
	}
	return false
}

// ScanStatus is the lifecycle state of a scan
type ScanStatus string

const (
	ScanStatusPending    ScanStatus = "pending"
	ScanStatusProcessing ScanStatus = "processing"
	ScanStatusCompleted  ScanStatus = "completed"
	ScanStatusFailed     ScanStatus = "failed"
)

// Terminal reports whether no further transitions are allowed from s
func (s ScanStatus) Terminal() bool {
	return s == ScanStatusCompleted || s == ScanStatusFailed
}

// CanTransition reports whether a scan may move from s to next.
// pending -> processing -> {completed, failed}; terminal states are final.
func (s ScanStatus) CanTransition(next ScanStatus) bool {
	switch s {
	case ScanStatusPending:
		return next == ScanStatusProcessing
	case ScanStatusProcessing:
		return next == ScanStatusCompleted || next == ScanStatusFailed
	}
	return false
}

// RiskLevel is the discrete risk tier of a file or pull request
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Scan is one execution of the detection pipeline against a repository
type Scan struct {
	ID             string       `json:"id"`
	OrganizationID string       `json:"organization_id"`
	RepositoryID   string       `json:"repository_id"`
	Type           ScanType     `json:"scan_type"`
	Status         ScanStatus   `json:"status"`
	Progress       int          `json:"progress"`
	Trigger        string       `json:"trigger,omitempty"` // manual|webhook|schedule
	Ref            string       `json:"ref,omitempty"`
	PRNumber       int          `json:"pr_number,omitempty"`
	Summary        *ScanSummary `json:"summary,omitempty"`
	ErrorMessage   string       `json:"error_message,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	StartedAt      *time.Time   `json:"started_at,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
}

// ScanSummary is the aggregate of all file and PR results of one scan
type ScanSummary struct {
	TotalCommits       int          `json:"total_commits"`
	TotalPRs           int          `json:"total_prs"`
	TotalFiles         int          `json:"total_files"`
	TotalLOC           int          `json:"total_loc"`
	AILOC              int          `json:"ai_loc"`
	AILOCPercentage    float64      `json:"ai_loc_percentage"`
	AIPRs              int          `json:"ai_prs"`
	ReviewedAIPRs      int          `json:"reviewed_ai_prs"`
	UnreviewedAIPRs    int          `json:"unreviewed_ai_prs"`
	UnreviewedAIMerges int          `json:"unreviewed_ai_merges"`
	HighRiskFiles      int          `json:"high_risk_files"`
	MediumRiskFiles    int          `json:"medium_risk_files"`
	LowRiskFiles       int          `json:"low_risk_files"`
	FilesNeedingReview int          `json:"files_needing_review"`
	FileResults        []FileResult `json:"file_results,omitempty"`
	PRResults          []PRResult   `json:"pr_results,omitempty"`
	DurationMS         int64        `json:"duration_ms"`
}

// FileResult is one file analyzed in a scan
type FileResult struct {
	ID         string          `json:"id,omitempty"`
	ScanID     string          `json:"scan_id,omitempty"`
	Path       string          `json:"path"`
	Language   string          `json:"language,omitempty"`
	TotalLines int             `json:"total_lines"`
	AILines    int             `json:"ai_lines"`
	Detection  DetectionResult `json:"detection"`
	RiskLevel  RiskLevel       `json:"risk_level"`
}

// PRState mirrors the GitHub pull request state, with merged split out of closed
type PRState string

const (
	PRStateOpen   PRState = "open"
	PRStateClosed PRState = "closed"
	PRStateMerged PRState = "merged"
)

// PRResult is one pull request analyzed in a scan
type PRResult struct {
	ID            string     `json:"id,omitempty"`
	ScanID        string     `json:"scan_id,omitempty"`
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	State         PRState    `json:"state"`
	AIGenerated   bool       `json:"ai_generated"`
	AIProbability float64    `json:"ai_probability"`
	HumanReviewed bool       `json:"human_reviewed"`
	ReviewCount   int        `json:"review_count"`
	Reviewers     []string   `json:"reviewers,omitempty"`
	Additions     int        `json:"additions"`
	Deletions     int        `json:"deletions"`
	FilesChanged  int        `json:"files_changed"`
	CreatedAt     time.Time  `json:"created_at"`
	MergedAt      *time.Time `json:"merged_at,omitempty"`
}
