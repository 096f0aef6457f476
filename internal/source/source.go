// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package source defines what the scan pipeline needs from a source-control host.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

var (
	// ErrUnauthorized means the stored credential was rejected or revoked
	ErrUnauthorized = errors.New("source control credential rejected")
	// ErrRateLimited means the host refused the request because of rate limiting
	ErrRateLimited = errors.New("source control rate limit exceeded")
	// ErrNoCredential means the organization has not connected an account
	ErrNoCredential = errors.New("no source control credential configured")
)

// FetchRequest describes which slice of a repository a scan needs
type FetchRequest struct {
	Owner    string
	Name     string
	Ref      string
	Type     aidebt.ScanType
	PRNumber int
	// Since limits incremental scans to commits after the previous scan
	Since    *time.Time
	MaxFiles int
	MaxPRs   int
}

// FileInput is one file's content plus the commit metadata that touched it
type FileInput struct {
	Path           string
	Language       string
	Content        string
	CommitMessages []string
	Branch         string
}

// Review is one submitted pull request review
type Review struct {
	Reviewer string
	State    string // APPROVED|CHANGES_REQUESTED|COMMENTED|DISMISSED
	Bot      bool
}

// PullRequestInput is the raw pull request data the detector scores
type PullRequestInput struct {
	Number         int
	Title          string
	Body           string
	Author         string
	HeadBranch     string
	Labels         []string
	State          aidebt.PRState
	Reviews        []Review
	CommitMessages []string
	AddedLines     string
	Language       string
	Additions      int
	Deletions      int
	ChangedFiles   int
	CreatedAt      time.Time
	MergedAt       *time.Time
}

// HumanReviewed reports whether someone other than the author (and not a bot)
// submitted a substantive review.
func (p PullRequestInput) HumanReviewed() bool {
	for _, r := range p.Reviews {
		if r.Bot || r.Reviewer == "" || r.Reviewer == p.Author {
			continue
		}
		switch r.State {
		case "APPROVED", "CHANGES_REQUESTED", "COMMENTED":
			return true
		}
	}
	return false
}

// Reviewers returns the distinct human reviewers, excluding the author
func (p PullRequestInput) Reviewers() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range p.Reviews {
		if r.Bot || r.Reviewer == "" || r.Reviewer == p.Author {
			continue
		}
		if _, ok := seen[r.Reviewer]; ok {
			continue
		}
		seen[r.Reviewer] = struct{}{}
		out = append(out, r.Reviewer)
	}
	return out
}

// ScanInput is everything fetched for one scan
type ScanInput struct {
	Commits      int
	Files        []FileInput
	PullRequests []PullRequestInput
}

// Provider fetches repository content and pull request data
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req FetchRequest) (*ScanInput, error)
	// PullRequest returns a single pull request, used when a review event arrives
	PullRequest(ctx context.Context, owner, name string, number int) (*PullRequestInput, error)
}

// Factory builds a Provider bound to an organization's stored credential
type Factory interface {
	ForOrganization(ctx context.Context, organizationID string) (Provider, error)
}
