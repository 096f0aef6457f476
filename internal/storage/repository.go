// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// APIKey represents an API key in the database
type APIKey struct {
	ID             string
	OrganizationID string
	KeyHash        string
	KeyPrefix      string
	Name           string
	Tier           string
	Scopes         []string
	RateLimitRPM   int
	LastUsedAt     *time.Time
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	RevokedAt      *time.Time
}

// HasScope reports whether the key grants scope. Keys without scopes grant everything.
func (k *APIKey) HasScope(scope string) bool {
	if len(k.Scopes) == 0 {
		return true
	}
	for _, s := range k.Scopes {
		if s == scope || s == "admin" {
			return true
		}
	}
	return false
}

// APIKeyRepository handles API key operations
type APIKeyRepository interface {
	GetByHash(ctx context.Context, keyHash string) (*APIKey, error)
	Create(ctx context.Context, apiKey *APIKey) error
	ListByOrganization(ctx context.Context, orgID string) ([]*APIKey, error)
	UpdateLastUsed(ctx context.Context, id string) error
	// Revoke revokes an active key of the organization and returns it
	Revoke(ctx context.Context, orgID, id string) (*APIKey, error)
}

// Organization is a tenant. GitHubToken is the credential used to read its repositories.
type Organization struct {
	ID            string
	Name          string
	Slug          string
	Tier          string
	GitHubOrgName string
	GitHubToken   string
	AlertEmails   []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrganizationRepository handles organization operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	Get(ctx context.Context, id string) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
}
