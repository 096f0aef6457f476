// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"context"
	"fmt"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
	"github.com/uptrace/bun"
)

const resultBatchSize = 500

type ResultRepository struct {
	db *bun.DB
}

func NewResultRepository(db *bun.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) CreateFileResults(ctx context.Context, scan *aidebt.Scan, results []aidebt.FileResult) error {
	if len(results) == 0 {
		return nil
	}

	rows := make([]DBFileResult, len(results))
	for i, res := range results {
		detection, err := encodeJSONField(res.Detection)
		if err != nil {
			return fmt.Errorf("failed to encode detection for %s: %w", res.Path, err)
		}
		rows[i] = DBFileResult{
			OrganizationID:      scan.OrganizationID,
			ScanID:              scan.ID,
			Path:                res.Path,
			Language:            res.Language,
			TotalLines:          res.TotalLines,
			AILines:             res.AILines,
			CombinedProbability: res.Detection.CombinedProbability,
			RiskLevel:           string(res.RiskLevel),
			DetectionMethod:     string(res.Detection.Method),
			NeedsReview:         res.Detection.NeedsReview,
			Detection:           detection,
		}
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for start := 0; start < len(rows); start += resultBatchSize {
			end := min(start+resultBatchSize, len(rows))
			batch := rows[start:end]
			if _, err := tx.NewInsert().Model(&batch).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ResultRepository) CreatePRResults(ctx context.Context, scan *aidebt.Scan, results []aidebt.PRResult) error {
	if len(results) == 0 {
		return nil
	}

	rows := make([]DBPRResult, len(results))
	for i, res := range results {
		rows[i] = DBPRResult{
			OrganizationID: scan.OrganizationID,
			RepositoryID:   scan.RepositoryID,
			ScanID:         scan.ID,
			Number:         res.Number,
			Title:          res.Title,
			Author:         res.Author,
			State:          string(res.State),
			AIGenerated:    res.AIGenerated,
			AIProbability:  res.AIProbability,
			HumanReviewed:  res.HumanReviewed,
			ReviewCount:    res.ReviewCount,
			Reviewers:      res.Reviewers,
			Additions:      res.Additions,
			Deletions:      res.Deletions,
			FilesChanged:   res.FilesChanged,
			OpenedAt:       res.CreatedAt,
			MergedAt:       res.MergedAt,
		}
	}

	_, err := r.db.NewInsert().Model(&rows).Exec(ctx)
	return err
}

func (r *ResultRepository) ListFileResults(ctx context.Context, orgID, scanID string, limit, offset int) ([]aidebt.FileResult, error) {
	var rows []DBFileResult
	err := r.db.NewSelect().
		Model(&rows).
		Where("organization_id = ?", orgID).
		Where("scan_id = ?", scanID).
		Order("combined_probability DESC", "path ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]aidebt.FileResult, len(rows))
	for i, row := range rows {
		results[i] = aidebt.FileResult{
			ID:         row.ID,
			ScanID:     row.ScanID,
			Path:       row.Path,
			Language:   row.Language,
			TotalLines: row.TotalLines,
			AILines:    row.AILines,
			RiskLevel:  aidebt.RiskLevel(row.RiskLevel),
		}
		if err := decodeJSONField(row.Detection, &results[i].Detection); err != nil {
			return nil, fmt.Errorf("failed to decode detection for %s: %w", row.Path, err)
		}
	}
	return results, nil
}

func (r *ResultRepository) ListPRResults(ctx context.Context, orgID, scanID string, limit, offset int) ([]aidebt.PRResult, error) {
	var rows []DBPRResult
	err := r.db.NewSelect().
		Model(&rows).
		Where("organization_id = ?", orgID).
		Where("scan_id = ?", scanID).
		Order("number DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]aidebt.PRResult, len(rows))
	for i, row := range rows {
		results[i] = aidebt.PRResult{
			ID:            row.ID,
			ScanID:        row.ScanID,
			Number:        row.Number,
			Title:         row.Title,
			Author:        row.Author,
			State:         aidebt.PRState(row.State),
			AIGenerated:   row.AIGenerated,
			AIProbability: row.AIProbability,
			HumanReviewed: row.HumanReviewed,
			ReviewCount:   row.ReviewCount,
			Reviewers:     row.Reviewers,
			Additions:     row.Additions,
			Deletions:     row.Deletions,
			FilesChanged:  row.FilesChanged,
			CreatedAt:     row.OpenedAt,
			MergedAt:      row.MergedAt,
		}
	}
	return results, nil
}

// MarkPRReviewed flags every stored result of a PR as human reviewed and
// records the reviewer when not already listed.
func (r *ResultRepository) MarkPRReviewed(ctx context.Context, orgID, repoID string, number int, reviewer string) (int, error) {
	q := r.db.NewUpdate().
		Model((*DBPRResult)(nil)).
		Set("human_reviewed = true").
		Where("organization_id = ?", orgID).
		Where("repository_id = ?", repoID).
		Where("number = ?", number)
	if reviewer != "" {
		q = q.Set("reviewers = CASE WHEN ? = ANY(coalesce(reviewers, '{}')) THEN reviewers ELSE array_append(coalesce(reviewers, '{}'), ?) END", reviewer, reviewer).
			Set("review_count = review_count + CASE WHEN ? = ANY(coalesce(reviewers, '{}')) THEN 0 ELSE 1 END", reviewer).
			WhereGroup(" AND ", func(q *bun.UpdateQuery) *bun.UpdateQuery {
				return q.Where("NOT human_reviewed").
					WhereOr("NOT (? = ANY(coalesce(reviewers, '{}')))", reviewer)
			})
	} else {
		q = q.Where("NOT human_reviewed")
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rowsAffected), nil
}
