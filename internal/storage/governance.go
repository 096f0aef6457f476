// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

var (
	ErrNoPendingScan     = errors.New("no pending scan")
	ErrScanNotClaimable  = errors.New("scan is not pending")
	ErrInvalidTransition = errors.New("invalid state transition")
)

// Repository is a connected source repository owned by one organization
type Repository struct {
	ID             string
	OrganizationID string
	GitHubID       *int64
	Owner          string
	Name           string
	DefaultBranch  string
	Language       string
	WebhookSecret  string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeactivatedAt  *time.Time
}

// FullName returns owner/name
func (r *Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// RepositoryRepository handles connected repositories. Deactivation never
// deletes history.
type RepositoryRepository interface {
	Create(ctx context.Context, repo *Repository) error
	Get(ctx context.Context, orgID, id string) (*Repository, error)
	// GetForWebhook loads a repository by id alone; webhook deliveries carry
	// no tenant credentials and are authenticated by the repository secret.
	GetForWebhook(ctx context.Context, id string) (*Repository, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*Repository, error)
	ListActive(ctx context.Context, orgID string) ([]*Repository, error)
	// ListOrganizationsWithActive returns ids of organizations owning at least one active repository
	ListOrganizationsWithActive(ctx context.Context) ([]string, error)
	Deactivate(ctx context.Context, orgID, id string) error
}

// ScanFilter narrows a scan listing
type ScanFilter struct {
	RepositoryID string
	Status       aidebt.ScanStatus
	Limit        int
	Offset       int
}

// ScanRepository persists scans. Claim operations are atomic conditional
// updates: of any number of concurrent callers at most one moves a scan out
// of pending.
type ScanRepository interface {
	Create(ctx context.Context, scan *aidebt.Scan) error
	Get(ctx context.Context, orgID, id string) (*aidebt.Scan, error)
	List(ctx context.Context, orgID string, filter ScanFilter) ([]*aidebt.Scan, error)
	ClaimNextPending(ctx context.Context) (*aidebt.Scan, error)
	Claim(ctx context.Context, id string) (*aidebt.Scan, error)
	UpdateProgress(ctx context.Context, id string, progress int) error
	Complete(ctx context.Context, id string, summary *aidebt.ScanSummary, completedAt time.Time) error
	Fail(ctx context.Context, id string, message string, failedAt time.Time) error
	// PreviousCompleted returns the newest completed scan of a repository other
	// than excludeID, restricted to the given scan types when any are passed
	PreviousCompleted(ctx context.Context, orgID, repoID, excludeID string, types ...aidebt.ScanType) (*aidebt.Scan, error)
	// FailStale fails processing scans started before cutoff and returns them
	FailStale(ctx context.Context, cutoff time.Time, message string) ([]*aidebt.Scan, error)
}

// ResultRepository persists per-file and per-PR results. Results are
// immutable except for the human_reviewed flag of a PR.
type ResultRepository interface {
	CreateFileResults(ctx context.Context, scan *aidebt.Scan, results []aidebt.FileResult) error
	CreatePRResults(ctx context.Context, scan *aidebt.Scan, results []aidebt.PRResult) error
	ListFileResults(ctx context.Context, orgID, scanID string, limit, offset int) ([]aidebt.FileResult, error)
	ListPRResults(ctx context.Context, orgID, scanID string, limit, offset int) ([]aidebt.PRResult, error)
	// MarkPRReviewed flips human_reviewed on every stored record of a PR and
	// returns how many records changed.
	MarkPRReviewed(ctx context.Context, orgID, repoID string, number int, reviewer string) (int, error)
}

// ScoreRepository is an append-only log of score snapshots
type ScoreRepository interface {
	AppendDebtScore(ctx context.Context, score *aidebt.AIDebtScore) error
	// LatestDebtScore returns the newest organization-level snapshot when repoID is nil
	LatestDebtScore(ctx context.Context, orgID string, repoID *string) (*aidebt.AIDebtScore, error)
	ListDebtScores(ctx context.Context, orgID string, repoID *string, limit int) ([]*aidebt.AIDebtScore, error)
	// LatestRepositoryScores returns the newest snapshot of each active repository
	LatestRepositoryScores(ctx context.Context, orgID string) ([]*aidebt.AIDebtScore, error)
	AppendTeamScores(ctx context.Context, scores []*aidebt.TeamMemberScore) error
	// LatestTeamScores returns each developer's most recent snapshot by period
	LatestTeamScores(ctx context.Context, orgID string) ([]*aidebt.TeamMemberScore, error)
}

// AlertFilter narrows an alert listing
type AlertFilter struct {
	Status       aidebt.AlertStatus
	RepositoryID string
	Limit        int
}

// AlertRepository persists alerts. Alerts are never mutated except through
// Transition, and only away from active.
type AlertRepository interface {
	Create(ctx context.Context, alert *aidebt.Alert) error
	Get(ctx context.Context, orgID, id string) (*aidebt.Alert, error)
	List(ctx context.Context, orgID string, filter AlertFilter) ([]*aidebt.Alert, error)
	Transition(ctx context.Context, orgID, id string, to aidebt.AlertStatus, at time.Time) (*aidebt.Alert, error)
}
