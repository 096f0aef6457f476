// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// DBAPIKey represents an API key in the database
type DBAPIKey struct {
	bun.BaseModel `bun:"table:api_keys,alias:ak"`

	ID             string     `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	OrganizationID string     `bun:"organization_id,type:uuid,notnull"`
	KeyHash        string     `bun:"key_hash,notnull,unique"`
	KeyPrefix      string     `bun:"key_prefix,notnull"`
	Name           string     `bun:"name"`
	Tier           string     `bun:"tier,notnull"`
	Scopes         []string   `bun:"scopes,array"`
	RateLimitRPM   int        `bun:"rate_limit_rpm,notnull"`
	LastUsedAt     *time.Time `bun:"last_used_at"`
	ExpiresAt      *time.Time `bun:"expires_at"`
	CreatedAt      time.Time  `bun:"created_at,notnull,default:now()"`
	RevokedAt      *time.Time `bun:"revoked_at"`
}

// DBOrganization represents an organization in the database
type DBOrganization struct {
	bun.BaseModel `bun:"table:organizations,alias:o"`

	ID            string     `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name          string     `bun:"name,notnull"`
	Slug          string     `bun:"slug,notnull,unique"`
	Tier          string     `bun:"tier,notnull"`
	GitHubOrgName string     `bun:"github_org_name"`
	GitHubToken   string     `bun:"github_token"`
	AlertEmails   []string   `bun:"alert_emails,array"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:now()"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:now()"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete"`
}

// DBRepository represents a connected repository in the database
type DBRepository struct {
	bun.BaseModel `bun:"table:repositories,alias:r"`

	ID             string     `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	OrganizationID string     `bun:"organization_id,type:uuid,notnull"`
	GitHubID       *int64     `bun:"github_id"`
	Owner          string     `bun:"owner,notnull"`
	Name           string     `bun:"name,notnull"`
	DefaultBranch  string     `bun:"default_branch"`
	Language       string     `bun:"language"`
	WebhookSecret  string     `bun:"webhook_secret,notnull"`
	IsActive       bool       `bun:"is_active,notnull,default:true"`
	CreatedAt      time.Time  `bun:"created_at,notnull,default:now()"`
	UpdatedAt      time.Time  `bun:"updated_at,notnull,default:now()"`
	DeactivatedAt  *time.Time `bun:"deactivated_at"`
}

// DBScan represents a scan in the database
type DBScan struct {
	bun.BaseModel `bun:"table:scans,alias:s"`

	ID             string          `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	OrganizationID string          `bun:"organization_id,type:uuid,notnull"`
	RepositoryID   string          `bun:"repository_id,type:uuid,notnull"`
	ScanType       string          `bun:"scan_type,notnull"`
	Status         string          `bun:"status,notnull"`
	Progress       int             `bun:"progress,notnull,default:0"`
	Trigger        string          `bun:"trigger"`
	Ref            string          `bun:"ref"`
	PRNumber       int             `bun:"pr_number"`
	Summary        json.RawMessage `bun:"summary,type:jsonb"`
	ErrorMessage   string          `bun:"error_message"`
	CreatedAt      time.Time       `bun:"created_at,notnull,default:now()"`
	StartedAt      *time.Time      `bun:"started_at"`
	CompletedAt    *time.Time      `bun:"completed_at"`
}

// DBFileResult represents one analyzed file in the database
type DBFileResult struct {
	bun.BaseModel `bun:"table:file_results,alias:fr"`

	ID                  string          `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	OrganizationID      string          `bun:"organization_id,type:uuid,notnull"`
	ScanID              string          `bun:"scan_id,type:uuid,notnull"`
	Path                string          `bun:"path,notnull"`
	Language            string          `bun:"language"`
	TotalLines          int             `bun:"total_lines,notnull"`
	AILines             int             `bun:"ai_lines,notnull"`
	CombinedProbability float64         `bun:"combined_probability,notnull"`
	RiskLevel           string          `bun:"risk_level,notnull"`
	DetectionMethod     string          `bun:"detection_method,notnull"`
	NeedsReview         bool            `bun:"needs_review,notnull"`
	Detection           json.RawMessage `bun:"detection,type:jsonb,notnull"`
	CreatedAt           time.Time       `bun:"created_at,notnull,default:now()"`
}

// DBPRResult represents one analyzed pull request in the database
type DBPRResult struct {
	bun.BaseModel `bun:"table:pr_results,alias:pr"`

	ID             string     `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	OrganizationID string     `bun:"organization_id,type:uuid,notnull"`
	RepositoryID   string     `bun:"repository_id,type:uuid,notnull"`
	ScanID         string     `bun:"scan_id,type:uuid,notnull"`
	Number         int        `bun:"number,notnull"`
	Title          string     `bun:"title"`
	Author         string     `bun:"author"`
	State          string     `bun:"state,notnull"`
	AIGenerated    bool       `bun:"ai_generated,notnull"`
	AIProbability  float64    `bun:"ai_probability,notnull"`
	HumanReviewed  bool       `bun:"human_reviewed,notnull"`
	ReviewCount    int        `bun:"review_count,notnull"`
	Reviewers      []string   `bun:"reviewers,array"`
	Additions      int        `bun:"additions"`
	Deletions      int        `bun:"deletions"`
	FilesChanged   int        `bun:"files_changed"`
	OpenedAt       time.Time  `bun:"opened_at"`
	MergedAt       *time.Time `bun:"merged_at"`
	CreatedAt      time.Time  `bun:"created_at,notnull,default:now()"`
}

// DBDebtScore represents one AI debt score snapshot in the database
type DBDebtScore struct {
	bun.BaseModel `bun:"table:ai_debt_scores,alias:ds"`

	ID             string          `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	OrganizationID string          `bun:"organization_id,type:uuid,notnull"`
	RepositoryID   *string         `bun:"repository_id,type:uuid"`
	ScanID         *string         `bun:"scan_id,type:uuid"`
	Score          int             `bun:"score,notnull"`
	RiskZone       string          `bun:"risk_zone,notnull"`
	Breakdown      json.RawMessage `bun:"breakdown,type:jsonb,notnull"`
	CalculatedAt   time.Time       `bun:"calculated_at,notnull,default:now()"`
}

// DBTeamMemberScore represents one developer score snapshot in the database
type DBTeamMemberScore struct {
	bun.BaseModel `bun:"table:team_member_scores,alias:tms"`

	ID                  string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	OrganizationID      string    `bun:"organization_id,type:uuid,notnull"`
	Developer           string    `bun:"developer,notnull"`
	Period              time.Time `bun:"period,notnull"`
	UsageLevel          string    `bun:"ai_usage_level,notnull"`
	ReviewQuality       string    `bun:"review_quality,notnull"`
	RiskIndex           string    `bun:"risk_index,notnull"`
	GovernanceScore     int       `bun:"governance_score,notnull"`
	AIPRs               int       `bun:"ai_prs,notnull"`
	TotalPRs            int       `bun:"total_prs,notnull"`
	ReviewsGiven        int       `bun:"reviews_given,notnull"`
	AIPRsWithWeakReview int       `bun:"ai_prs_with_weak_review,notnull"`
	CalculatedAt        time.Time `bun:"calculated_at,notnull,default:now()"`
}

// DBAlert represents an alert in the database
type DBAlert struct {
	bun.BaseModel `bun:"table:alerts,alias:a"`

	ID             string          `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	OrganizationID string          `bun:"organization_id,type:uuid,notnull"`
	RepositoryID   *string         `bun:"repository_id,type:uuid"`
	ScanID         *string         `bun:"scan_id,type:uuid"`
	Severity       string          `bun:"severity,notnull"`
	Category       string          `bun:"category,notnull"`
	Title          string          `bun:"title,notnull"`
	Description    string          `bun:"description"`
	Status         string          `bun:"status,notnull"`
	Context        json.RawMessage `bun:"context,type:jsonb"`
	CreatedAt      time.Time       `bun:"created_at,notnull,default:now()"`
	AcknowledgedAt *time.Time      `bun:"acknowledged_at"`
	ResolvedAt     *time.Time      `bun:"resolved_at"`
}
