// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"context"
	"time"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
	"github.com/uptrace/bun"
)

type AlertRepository struct {
	db *bun.DB
}

func NewAlertRepository(db *bun.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *aidebt.Alert) error {
	row := &DBAlert{
		OrganizationID: alert.OrganizationID,
		RepositoryID:   alert.RepositoryID,
		ScanID:         alert.ScanID,
		Severity:       string(alert.Severity),
		Category:       string(alert.Category),
		Title:          alert.Title,
		Description:    alert.Description,
		Status:         string(aidebt.AlertActive),
		Context:        alert.Context,
	}

	_, err := r.db.NewInsert().Model(row).Returning("id, created_at").Exec(ctx)
	if err != nil {
		return err
	}

	alert.ID = row.ID
	alert.Status = aidebt.AlertActive
	alert.CreatedAt = row.CreatedAt
	return nil
}

func (r *AlertRepository) Get(ctx context.Context, orgID, id string) (*aidebt.Alert, error) {
	var row DBAlert
	err := r.db.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return alertFromDB(&row), nil
}

func (r *AlertRepository) List(ctx context.Context, orgID string, filter storage.AlertFilter) ([]*aidebt.Alert, error) {
	var rows []DBAlert
	q := r.db.NewSelect().
		Model(&rows).
		Where("organization_id = ?", orgID)
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.RepositoryID != "" {
		q = q.Where("repository_id = ?", filter.RepositoryID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	if err := q.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}

	alerts := make([]*aidebt.Alert, len(rows))
	for i := range rows {
		alerts[i] = alertFromDB(&rows[i])
	}
	return alerts, nil
}

// Transition moves an active alert to a closing status. Alerts that are
// already closed are left unchanged and reported as ErrInvalidTransition.
func (r *AlertRepository) Transition(ctx context.Context, orgID, id string, to aidebt.AlertStatus, at time.Time) (*aidebt.Alert, error) {
	if !aidebt.AlertActive.CanTransition(to) {
		return nil, storage.ErrInvalidTransition
	}

	var row DBAlert
	q := r.db.NewUpdate().
		Model(&row).
		Set("status = ?", string(to)).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Where("status = ?", string(aidebt.AlertActive))
	switch to {
	case aidebt.AlertAcknowledged:
		q = q.Set("acknowledged_at = ?", at)
	default:
		q = q.Set("resolved_at = ?", at)
	}

	err := q.Returning("*").Scan(ctx)
	if err == nil {
		return alertFromDB(&row), nil
	}
	if !isNoRows(err) {
		return nil, err
	}

	// distinguish a missing alert from one that is no longer active
	if _, getErr := r.Get(ctx, orgID, id); getErr != nil {
		return nil, getErr
	}
	return nil, storage.ErrInvalidTransition
}

func alertFromDB(row *DBAlert) *aidebt.Alert {
	return &aidebt.Alert{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		RepositoryID:   row.RepositoryID,
		ScanID:         row.ScanID,
		Severity:       aidebt.AlertSeverity(row.Severity),
		Category:       aidebt.AlertCategory(row.Category),
		Title:          row.Title,
		Description:    row.Description,
		Status:         aidebt.AlertStatus(row.Status),
		Context:        row.Context,
		CreatedAt:      row.CreatedAt,
		AcknowledgedAt: row.AcknowledgedAt,
		ResolvedAt:     row.ResolvedAt,
	}
}
