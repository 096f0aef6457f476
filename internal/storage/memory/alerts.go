// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package memory

import (
	"context"
	"time"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

type alertRepo Store

func (r *alertRepo) Create(_ context.Context, alert *aidebt.Alert) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	alert.ID = newID()
	alert.Status = aidebt.AlertActive
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = s.now()
	}
	stored := *alert
	s.alerts[alert.ID] = &stored
	s.alertOrder = append(s.alertOrder, alert.ID)
	return nil
}

func (r *alertRepo) Get(_ context.Context, orgID, id string) (*aidebt.Alert, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.alerts[id]
	if !ok || alert.OrganizationID != orgID {
		return nil, storage.ErrNotFound
	}
	out := *alert
	return &out, nil
}

func (r *alertRepo) List(_ context.Context, orgID string, filter storage.AlertFilter) ([]*aidebt.Alert, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts := []*aidebt.Alert{}
	for i := len(s.alertOrder) - 1; i >= 0; i-- {
		alert := s.alerts[s.alertOrder[i]]
		if alert.OrganizationID != orgID {
			continue
		}
		if filter.Status != "" && alert.Status != filter.Status {
			continue
		}
		if filter.RepositoryID != "" && (alert.RepositoryID == nil || *alert.RepositoryID != filter.RepositoryID) {
			continue
		}
		out := *alert
		alerts = append(alerts, &out)
	}
	return page(alerts, filter.Limit, 0), nil
}

func (r *alertRepo) Transition(_ context.Context, orgID, id string, to aidebt.AlertStatus, at time.Time) (*aidebt.Alert, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.alerts[id]
	if !ok || alert.OrganizationID != orgID {
		return nil, storage.ErrNotFound
	}
	if !alert.Status.CanTransition(to) {
		return nil, storage.ErrInvalidTransition
	}

	alert.Status = to
	if to == aidebt.AlertAcknowledged {
		alert.AcknowledgedAt = &at
	} else {
		alert.ResolvedAt = &at
	}
	out := *alert
	return &out, nil
}
