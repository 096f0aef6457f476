// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package github

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/regrada-ai/aidebt-be/internal/source"
	"github.com/regrada-ai/aidebt-be/internal/storage"
)

// Factory builds providers from the token stored on each organization
type Factory struct {
	orgs    storage.OrganizationRepository
	baseURL string
	rps     rate.Limit
	log     *logrus.Entry
}

// NewFactory creates a factory. requestsPerSecond <= 0 disables throttling.
func NewFactory(orgs storage.OrganizationRepository, baseURL string, requestsPerSecond float64, log *logrus.Entry) *Factory {
	rps := rate.Inf
	if requestsPerSecond > 0 {
		rps = rate.Limit(requestsPerSecond)
	}
	return &Factory{orgs: orgs, baseURL: baseURL, rps: rps, log: log}
}

func (f *Factory) ForOrganization(ctx context.Context, organizationID string) (source.Provider, error) {
	org, err := f.orgs.Get(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if org.GitHubToken == "" {
		return nil, source.ErrNoCredential
	}

	burst := 1
	if f.rps != rate.Inf {
		burst = max(int(f.rps), 1)
	}
	return NewProvider(org.GitHubToken, f.baseURL, rate.NewLimiter(f.rps, burst), f.log.WithField("organization_id", organizationID))
}
