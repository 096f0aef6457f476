// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
	"github.com/uptrace/bun"
)

type ScanRepository struct {
	db *bun.DB
}

func NewScanRepository(db *bun.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

func (r *ScanRepository) Create(ctx context.Context, scan *aidebt.Scan) error {
	dbScan := &DBScan{
		OrganizationID: scan.OrganizationID,
		RepositoryID:   scan.RepositoryID,
		ScanType:       string(scan.Type),
		Status:         string(aidebt.ScanStatusPending),
		Trigger:        scan.Trigger,
		Ref:            scan.Ref,
		PRNumber:       scan.PRNumber,
	}

	_, err := r.db.NewInsert().
		Model(dbScan).
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		return err
	}

	scan.ID = dbScan.ID
	scan.Status = aidebt.ScanStatusPending
	scan.Progress = 0
	scan.CreatedAt = dbScan.CreatedAt
	return nil
}

func (r *ScanRepository) Get(ctx context.Context, orgID, id string) (*aidebt.Scan, error) {
	var dbScan DBScan
	err := r.db.NewSelect().
		Model(&dbScan).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return scanFromDB(&dbScan)
}

func (r *ScanRepository) List(ctx context.Context, orgID string, filter storage.ScanFilter) ([]*aidebt.Scan, error) {
	var dbScans []DBScan
	q := r.db.NewSelect().
		Model(&dbScans).
		Where("organization_id = ?", orgID)
	if filter.RepositoryID != "" {
		q = q.Where("repository_id = ?", filter.RepositoryID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	if err := q.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}
	return scansFromDB(dbScans)
}

// ClaimNextPending moves the oldest pending scan to processing. Concurrent
// claimers skip rows locked by each other, so each pending scan is handed
// out at most once.
func (r *ScanRepository) ClaimNextPending(ctx context.Context) (*aidebt.Scan, error) {
	next := r.db.NewSelect().
		Model((*DBScan)(nil)).
		Column("id").
		Where("status = ?", string(aidebt.ScanStatusPending)).
		Order("created_at ASC").
		Limit(1).
		For("UPDATE SKIP LOCKED")

	var dbScan DBScan
	err := r.db.NewUpdate().
		Model(&dbScan).
		Set("status = ?", string(aidebt.ScanStatusProcessing)).
		Set("started_at = ?", time.Now()).
		Set("progress = 0").
		Where("id = (?)", next).
		Where("status = ?", string(aidebt.ScanStatusPending)).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNoPendingScan
		}
		return nil, err
	}
	return scanFromDB(&dbScan)
}

func (r *ScanRepository) Claim(ctx context.Context, id string) (*aidebt.Scan, error) {
	var dbScan DBScan
	err := r.db.NewUpdate().
		Model(&dbScan).
		Set("status = ?", string(aidebt.ScanStatusProcessing)).
		Set("started_at = ?", time.Now()).
		Set("progress = 0").
		Where("id = ?", id).
		Where("status = ?", string(aidebt.ScanStatusPending)).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrScanNotClaimable
		}
		return nil, err
	}
	return scanFromDB(&dbScan)
}

func (r *ScanRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	_, err := r.db.NewUpdate().
		Model((*DBScan)(nil)).
		Set("progress = ?", progress).
		Where("id = ?", id).
		Where("status = ?", string(aidebt.ScanStatusProcessing)).
		Where("progress <= ?", progress).
		Exec(ctx)
	return err
}

func (r *ScanRepository) Complete(ctx context.Context, id string, summary *aidebt.ScanSummary, completedAt time.Time) error {
	raw, err := encodeSummary(summary)
	if err != nil {
		return err
	}

	res, err := r.db.NewUpdate().
		Model((*DBScan)(nil)).
		Set("status = ?", string(aidebt.ScanStatusCompleted)).
		Set("progress = 100").
		Set("summary = ?::jsonb", string(raw)).
		Set("completed_at = ?", completedAt).
		Where("id = ?", id).
		Where("status = ?", string(aidebt.ScanStatusProcessing)).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireTransition(res)
}

func (r *ScanRepository) Fail(ctx context.Context, id string, message string, failedAt time.Time) error {
	res, err := r.db.NewUpdate().
		Model((*DBScan)(nil)).
		Set("status = ?", string(aidebt.ScanStatusFailed)).
		Set("error_message = ?", message).
		Set("completed_at = ?", failedAt).
		Where("id = ?", id).
		Where("status = ?", string(aidebt.ScanStatusProcessing)).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireTransition(res)
}

func (r *ScanRepository) PreviousCompleted(ctx context.Context, orgID, repoID, excludeID string, types ...aidebt.ScanType) (*aidebt.Scan, error) {
	var dbScan DBScan
	q := r.db.NewSelect().
		Model(&dbScan).
		Where("organization_id = ?", orgID).
		Where("repository_id = ?", repoID).
		Where("status = ?", string(aidebt.ScanStatusCompleted))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		q = q.Where("scan_type IN (?)", bun.In(names))
	}

	err := q.Order("completed_at DESC").Limit(1).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return scanFromDB(&dbScan)
}

func (r *ScanRepository) FailStale(ctx context.Context, cutoff time.Time, message string) ([]*aidebt.Scan, error) {
	var dbScans []DBScan
	err := r.db.NewUpdate().
		Model(&dbScans).
		Set("status = ?", string(aidebt.ScanStatusFailed)).
		Set("error_message = ?", message).
		Set("completed_at = ?", time.Now()).
		Where("status = ?", string(aidebt.ScanStatusProcessing)).
		Where("started_at < ?", cutoff).
		Returning("*").
		Scan(ctx)
	if err != nil && !isNoRows(err) {
		return nil, err
	}
	return scansFromDB(dbScans)
}

func requireTransition(res interface{ RowsAffected() (int64, error) }) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return storage.ErrInvalidTransition
	}
	return nil
}

// encodeSummary stores the aggregate counters only; per-file and per-PR
// results live in their own tables.
func encodeSummary(summary *aidebt.ScanSummary) ([]byte, error) {
	if summary == nil {
		return []byte("null"), nil
	}
	stored := *summary
	stored.FileResults = nil
	stored.PRResults = nil
	raw, err := encodeJSONField(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scan summary: %w", err)
	}
	return raw, nil
}

func scanFromDB(dbScan *DBScan) (*aidebt.Scan, error) {
	scan := &aidebt.Scan{
		ID:             dbScan.ID,
		OrganizationID: dbScan.OrganizationID,
		RepositoryID:   dbScan.RepositoryID,
		Type:           aidebt.ScanType(dbScan.ScanType),
		Status:         aidebt.ScanStatus(dbScan.Status),
		Progress:       dbScan.Progress,
		Trigger:        dbScan.Trigger,
		Ref:            dbScan.Ref,
		PRNumber:       dbScan.PRNumber,
		ErrorMessage:   dbScan.ErrorMessage,
		CreatedAt:      dbScan.CreatedAt,
		StartedAt:      dbScan.StartedAt,
		CompletedAt:    dbScan.CompletedAt,
	}

	if len(dbScan.Summary) > 0 && string(dbScan.Summary) != "null" {
		var summary aidebt.ScanSummary
		if err := decodeJSONField(dbScan.Summary, &summary); err != nil {
			return nil, fmt.Errorf("failed to decode scan summary: %w", err)
		}
		scan.Summary = &summary
	}
	return scan, nil
}

func scansFromDB(dbScans []DBScan) ([]*aidebt.Scan, error) {
	scans := make([]*aidebt.Scan, 0, len(dbScans))
	for i := range dbScans {
		scan, err := scanFromDB(&dbScans[i])
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}
	return scans, nil
}
