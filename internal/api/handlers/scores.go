// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/api/types"
	"github.com/regrada-ai/aidebt-be/internal/scoring"
	"github.com/regrada-ai/aidebt-be/internal/storage"
)

type ScoreHandler struct {
	scores storage.ScoreRepository
	repos  storage.RepositoryRepository
	log    *logrus.Entry
}

func NewScoreHandler(scores storage.ScoreRepository, repos storage.RepositoryRepository, log *logrus.Entry) *ScoreHandler {
	return &ScoreHandler{scores: scores, repos: repos, log: log}
}

// GetDebtScore returns the latest debt score
// @Summary Get the latest AI debt score
// @Description Company-level score, or one repository's score when repository_id is given.
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Param repository_id query string false "Repository ID"
// @Success 200 {object} aidebt.AIDebtScore
// @Failure 404 {object} types.ErrorResponse
// @Router /v1/scores/debt [get]
func (h *ScoreHandler) GetDebtScore(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	repoID, ok := h.repositoryFilter(c, orgID)
	if !ok {
		return
	}

	score, err := h.scores.LatestDebtScore(c.Request.Context(), orgID, repoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "No debt score has been calculated yet")
			return
		}
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to fetch debt score")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch debt score")
		return
	}
	c.JSON(http.StatusOK, score)
}

// ListDebtScoreHistory returns debt score snapshots newest first
// @Summary List AI debt score history
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Param repository_id query string false "Repository ID"
// @Param limit query int false "Number of snapshots" default(30)
// @Success 200 {object} types.DebtScoreHistoryResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /v1/scores/debt/history [get]
func (h *ScoreHandler) ListDebtScoreHistory(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if err != nil || limit <= 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a positive integer")
		return
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	repoID, ok := h.repositoryFilter(c, orgID)
	if !ok {
		return
	}

	scores, err := h.scores.ListDebtScores(c.Request.Context(), orgID, repoID, limit)
	if err != nil {
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to list debt scores")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch debt scores")
		return
	}
	c.JSON(http.StatusOK, types.DebtScoreHistoryResponse{Scores: scores, Count: len(scores)})
}

// ListRepositoryScores returns the latest score of every active repository
// @Summary List latest repository debt scores
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} types.DebtScoreHistoryResponse
// @Router /v1/scores/repositories [get]
func (h *ScoreHandler) ListRepositoryScores(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	scores, err := h.scores.LatestRepositoryScores(c.Request.Context(), orgID)
	if err != nil {
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to list repository scores")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch repository scores")
		return
	}
	c.JSON(http.StatusOK, types.DebtScoreHistoryResponse{Scores: scores, Count: len(scores)})
}

// ListTeamScores returns each developer's latest governance snapshot
// @Summary List team member scores
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} types.TeamScoreResponse
// @Router /v1/scores/team [get]
func (h *ScoreHandler) ListTeamScores(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	members, err := h.scores.LatestTeamScores(c.Request.Context(), orgID)
	if err != nil {
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to list team scores")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch team scores")
		return
	}
	c.JSON(http.StatusOK, types.TeamScoreResponse{Members: members, Count: len(members)})
}

// GetAdoptionScore scores the team's AI adoption from the latest member snapshots
// @Summary Get the team adoption score
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} aidebt.AdoptionScore
// @Router /v1/scores/adoption [get]
func (h *ScoreHandler) GetAdoptionScore(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	members, err := h.scores.LatestTeamScores(c.Request.Context(), orgID)
	if err != nil {
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to list team scores")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch team scores")
		return
	}
	c.JSON(http.StatusOK, scoring.AdoptionFromSnapshots(members))
}

// repositoryFilter resolves ?repository_id, checking it belongs to the organization.
// A nil result selects company-level scores.
func (h *ScoreHandler) repositoryFilter(c *gin.Context, orgID string) (*string, bool) {
	id := c.Query("repository_id")
	if id == "" {
		return nil, true
	}
	if _, err := h.repos.Get(c.Request.Context(), orgID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Repository not found")
			return nil, false
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch repository")
		return nil, false
	}
	return &id, true
}
