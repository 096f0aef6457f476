// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package types

import (
	"time"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// Error represents an API error response
type Error struct {
	Code    string `json:"code" example:"INVALID_REQUEST"`
	Message string `json:"message" example:"Invalid request parameters"`
}

// ErrorResponse wraps an error
type ErrorResponse struct {
	Error Error `json:"error"`
}

// ConnectRepositoryRequest connects a source repository to the organization
type ConnectRepositoryRequest struct {
	Owner         string `json:"owner" binding:"required" example:"acme"`
	Name          string `json:"name" binding:"required" example:"payments-api"`
	DefaultBranch string `json:"default_branch,omitempty" example:"main"`
	Language      string `json:"language,omitempty" example:"Go"`
	GitHubID      *int64 `json:"github_id,omitempty" example:"123456789"`
}

// Repository represents a connected repository
type Repository struct {
	ID            string     `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Owner         string     `json:"owner" example:"acme"`
	Name          string     `json:"name" example:"payments-api"`
	FullName      string     `json:"full_name" example:"acme/payments-api"`
	DefaultBranch string     `json:"default_branch" example:"main"`
	Language      string     `json:"language,omitempty" example:"Go"`
	IsActive      bool       `json:"is_active" example:"true"`
	CreatedAt     time.Time  `json:"created_at"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
}

// ConnectRepositoryResponse carries the webhook secret, which is only returned once
type ConnectRepositoryResponse struct {
	Repository    Repository `json:"repository"`
	WebhookURL    string     `json:"webhook_url" example:"/webhooks/github/123e4567-e89b-12d3-a456-426614174000"`
	WebhookSecret string     `json:"webhook_secret" example:"whsec_3k2j..."`
}

// NewRepository converts a stored repository
func NewRepository(repo *storage.Repository) Repository {
	return Repository{
		ID:            repo.ID,
		Owner:         repo.Owner,
		Name:          repo.Name,
		FullName:      repo.FullName(),
		DefaultBranch: repo.DefaultBranch,
		Language:      repo.Language,
		IsActive:      repo.IsActive,
		CreatedAt:     repo.CreatedAt,
		DeactivatedAt: repo.DeactivatedAt,
	}
}

// TriggerScanRequest queues scans. An empty repository_id scans every active repository.
type TriggerScanRequest struct {
	RepositoryID string          `json:"repository_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	ScanType     aidebt.ScanType `json:"scan_type,omitempty" example:"full"`
	Ref          string          `json:"ref,omitempty" example:"main"`
	PRNumber     int             `json:"pr_number,omitempty" example:"42"`
}

// ScanListResponse is a page of scans
type ScanListResponse struct {
	Scans []*aidebt.Scan `json:"scans"`
	Count int            `json:"count" example:"1"`
}

// FileResultListResponse is a page of file results
type FileResultListResponse struct {
	Files []aidebt.FileResult `json:"files"`
	Count int                 `json:"count" example:"1"`
}

// PRResultListResponse is a page of pull request results
type PRResultListResponse struct {
	PullRequests []aidebt.PRResult `json:"pull_requests"`
	Count        int               `json:"count" example:"1"`
}

// ReportURLResponse is a presigned link to a scan report
type ReportURLResponse struct {
	URL       string    `json:"url" example:"https://bucket.s3.amazonaws.com/scans/..."`
	ExpiresAt time.Time `json:"expires_at"`
}

// DebtScoreHistoryResponse lists score snapshots newest first
type DebtScoreHistoryResponse struct {
	Scores []*aidebt.AIDebtScore `json:"scores"`
	Count  int                   `json:"count" example:"1"`
}

// TeamScoreResponse lists the latest snapshot per developer
type TeamScoreResponse struct {
	Members []*aidebt.TeamMemberScore `json:"members"`
	Count   int                       `json:"count" example:"1"`
}

// AlertListResponse is a page of alerts
type AlertListResponse struct {
	Alerts []*aidebt.Alert `json:"alerts"`
	Count  int             `json:"count" example:"1"`
}

// Organization represents an organization. The GitHub token is never returned.
type Organization struct {
	ID                string    `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name              string    `json:"name" example:"Acme Corp"`
	Slug              string    `json:"slug" example:"acme"`
	Tier              string    `json:"tier" example:"team"`
	GitHubOrgName     string    `json:"github_org_name,omitempty" example:"acme"`
	GitHubTokenConfig bool      `json:"github_token_configured" example:"true"`
	AlertEmails       []string  `json:"alert_emails" example:"eng-leads@acme.io"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewOrganization converts a stored organization
func NewOrganization(org *storage.Organization) Organization {
	emails := org.AlertEmails
	if emails == nil {
		emails = []string{}
	}
	return Organization{
		ID:                org.ID,
		Name:              org.Name,
		Slug:              org.Slug,
		Tier:              org.Tier,
		GitHubOrgName:     org.GitHubOrgName,
		GitHubTokenConfig: org.GitHubToken != "",
		AlertEmails:       emails,
		CreatedAt:         org.CreatedAt,
		UpdatedAt:         org.UpdatedAt,
	}
}

// UpdateOrganizationRequest changes organization settings. Omitted fields are left unchanged.
type UpdateOrganizationRequest struct {
	Name          *string  `json:"name,omitempty" example:"Acme Corp"`
	GitHubOrgName *string  `json:"github_org_name,omitempty" example:"acme"`
	GitHubToken   *string  `json:"github_token,omitempty" example:"ghp_..."`
	AlertEmails   []string `json:"alert_emails,omitempty" binding:"omitempty,dive,email" example:"eng-leads@acme.io"`
}

// CreateAPIKeyRequest represents a request to create an API key
type CreateAPIKeyRequest struct {
	Name      string     `json:"name" binding:"required" example:"CI scanner"`
	Scopes    []string   `json:"scopes,omitempty" example:"scans:write,scores:read"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// APIKeyResponse represents an API key response
type APIKeyResponse struct {
	ID           string     `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name         string     `json:"name" example:"CI scanner"`
	KeyPrefix    string     `json:"key_prefix" example:"ad_live_abc1234"`
	Tier         string     `json:"tier" example:"team"`
	Scopes       []string   `json:"scopes" example:"scans:write,scores:read"`
	RateLimitRPM int        `json:"rate_limit_rpm" example:"100"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewAPIKeyResponse converts a stored key
func NewAPIKeyResponse(key *storage.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:           key.ID,
		Name:         key.Name,
		KeyPrefix:    key.KeyPrefix,
		Tier:         key.Tier,
		Scopes:       key.Scopes,
		RateLimitRPM: key.RateLimitRPM,
		LastUsedAt:   key.LastUsedAt,
		ExpiresAt:    key.ExpiresAt,
		CreatedAt:    key.CreatedAt,
	}
}

// CreateAPIKeyResponse includes the secret, which is only returned once
type CreateAPIKeyResponse struct {
	APIKey APIKeyResponse `json:"api_key"`
	Secret string         `json:"secret" example:"ad_live_3k2j4h5g6f7d8s9a"`
}
