// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"context"
	"fmt"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
	"github.com/uptrace/bun"
)

type ScoreRepository struct {
	db *bun.DB
}

func NewScoreRepository(db *bun.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) AppendDebtScore(ctx context.Context, score *aidebt.AIDebtScore) error {
	breakdown, err := encodeJSONField(score.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to encode score breakdown: %w", err)
	}

	row := &DBDebtScore{
		OrganizationID: score.OrganizationID,
		RepositoryID:   score.RepositoryID,
		ScanID:         score.ScanID,
		Score:          score.Score,
		RiskZone:       string(score.Zone),
		Breakdown:      breakdown,
		CalculatedAt:   score.CalculatedAt,
	}

	_, err = r.db.NewInsert().Model(row).Returning("id").Exec(ctx)
	if err != nil {
		return err
	}
	score.ID = row.ID
	return nil
}

func (r *ScoreRepository) LatestDebtScore(ctx context.Context, orgID string, repoID *string) (*aidebt.AIDebtScore, error) {
	var row DBDebtScore
	err := scopeRepository(r.db.NewSelect().Model(&row), orgID, repoID).
		Order("calculated_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return debtScoreFromDB(&row)
}

func (r *ScoreRepository) ListDebtScores(ctx context.Context, orgID string, repoID *string, limit int) ([]*aidebt.AIDebtScore, error) {
	var rows []DBDebtScore
	q := scopeRepository(r.db.NewSelect().Model(&rows), orgID, repoID).
		Order("calculated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return debtScoresFromDB(rows)
}

func (r *ScoreRepository) LatestRepositoryScores(ctx context.Context, orgID string) ([]*aidebt.AIDebtScore, error) {
	var rows []DBDebtScore
	err := r.db.NewSelect().
		Model(&rows).
		DistinctOn("ds.repository_id").
		Join("JOIN repositories AS r ON r.id = ds.repository_id").
		Where("ds.organization_id = ?", orgID).
		Where("r.is_active").
		OrderExpr("ds.repository_id, ds.calculated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return debtScoresFromDB(rows)
}

func (r *ScoreRepository) AppendTeamScores(ctx context.Context, scores []*aidebt.TeamMemberScore) error {
	if len(scores) == 0 {
		return nil
	}

	rows := make([]DBTeamMemberScore, len(scores))
	for i, s := range scores {
		rows[i] = DBTeamMemberScore{
			OrganizationID:      s.OrganizationID,
			Developer:           s.Developer,
			Period:              s.Period,
			UsageLevel:          string(s.UsageLevel),
			ReviewQuality:       string(s.ReviewQuality),
			RiskIndex:           string(s.RiskIndex),
			GovernanceScore:     s.GovernanceScore,
			AIPRs:               s.AIPRs,
			TotalPRs:            s.TotalPRs,
			ReviewsGiven:        s.ReviewsGiven,
			AIPRsWithWeakReview: s.AIPRsWithWeakReview,
			CalculatedAt:        s.CalculatedAt,
		}
	}

	_, err := r.db.NewInsert().Model(&rows).Returning("id").Exec(ctx)
	if err != nil {
		return err
	}
	for i := range rows {
		scores[i].ID = rows[i].ID
	}
	return nil
}

func (r *ScoreRepository) LatestTeamScores(ctx context.Context, orgID string) ([]*aidebt.TeamMemberScore, error) {
	var rows []DBTeamMemberScore
	err := r.db.NewSelect().
		Model(&rows).
		DistinctOn("developer").
		Where("organization_id = ?", orgID).
		OrderExpr("developer, period DESC, calculated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	scores := make([]*aidebt.TeamMemberScore, len(rows))
	for i, row := range rows {
		scores[i] = &aidebt.TeamMemberScore{
			ID:                  row.ID,
			OrganizationID:      row.OrganizationID,
			Developer:           row.Developer,
			Period:              row.Period,
			UsageLevel:          aidebt.UsageLevel(row.UsageLevel),
			ReviewQuality:       aidebt.ReviewQuality(row.ReviewQuality),
			RiskIndex:           aidebt.RiskLevel(row.RiskIndex),
			GovernanceScore:     row.GovernanceScore,
			AIPRs:               row.AIPRs,
			TotalPRs:            row.TotalPRs,
			ReviewsGiven:        row.ReviewsGiven,
			AIPRsWithWeakReview: row.AIPRsWithWeakReview,
			CalculatedAt:        row.CalculatedAt,
		}
	}
	return scores, nil
}

// scopeRepository selects organization-level snapshots when repoID is nil
func scopeRepository(q *bun.SelectQuery, orgID string, repoID *string) *bun.SelectQuery {
	q = q.Where("organization_id = ?", orgID)
	if repoID == nil {
		return q.Where("repository_id IS NULL")
	}
	return q.Where("repository_id = ?", *repoID)
}

func debtScoreFromDB(row *DBDebtScore) (*aidebt.AIDebtScore, error) {
	score := &aidebt.AIDebtScore{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		RepositoryID:   row.RepositoryID,
		ScanID:         row.ScanID,
		Score:          row.Score,
		Zone:           aidebt.RiskZone(row.RiskZone),
		CalculatedAt:   row.CalculatedAt,
	}
	if err := decodeJSONField(row.Breakdown, &score.Breakdown); err != nil {
		return nil, fmt.Errorf("failed to decode score breakdown: %w", err)
	}
	return score, nil
}

func debtScoresFromDB(rows []DBDebtScore) ([]*aidebt.AIDebtScore, error) {
	scores := make([]*aidebt.AIDebtScore, 0, len(rows))
	for i := range rows {
		score, err := debtScoreFromDB(&rows[i])
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, nil
}
