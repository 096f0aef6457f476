// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/api/types"
	"github.com/regrada-ai/aidebt-be/internal/storage"
)

type RepositoryHandler struct {
	repos storage.RepositoryRepository
	log   *logrus.Entry
}

func NewRepositoryHandler(repos storage.RepositoryRepository, log *logrus.Entry) *RepositoryHandler {
	return &RepositoryHandler{repos: repos, log: log}
}

// ConnectRepository connects a repository for scanning
// @Summary Connect a repository
// @Description Connect a GitHub repository to your organization. The webhook secret is only returned once.
// @Tags repositories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body types.ConnectRepositoryRequest true "Repository details"
// @Success 201 {object} types.ConnectRepositoryResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /v1/repositories [post]
func (h *RepositoryHandler) ConnectRepository(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req types.ConnectRepositoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request parameters")
		return
	}
	owner := strings.TrimSpace(req.Owner)
	name := strings.TrimSpace(req.Name)
	if owner == "" || name == "" || strings.Contains(owner, "/") || strings.Contains(name, "/") {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "owner and name must be single path segments")
		return
	}
	branch := strings.TrimSpace(req.DefaultBranch)
	if branch == "" {
		branch = "main"
	}

	secret, err := generateWebhookSecret()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate webhook secret")
		return
	}

	repo := &storage.Repository{
		OrganizationID: orgID,
		GitHubID:       req.GitHubID,
		Owner:          owner,
		Name:           name,
		DefaultBranch:  branch,
		Language:       req.Language,
		WebhookSecret:  secret,
	}
	if err := h.repos.Create(c.Request.Context(), repo); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respondError(c, http.StatusConflict, "CONFLICT", "Repository is already connected")
			return
		}
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to connect repository")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to connect repository")
		return
	}

	h.log.WithFields(logrus.Fields{
		"organization_id": orgID,
		"repository_id":   repo.ID,
		"repository":      repo.FullName(),
	}).Info("repository connected")

	c.JSON(http.StatusCreated, types.ConnectRepositoryResponse{
		Repository:    types.NewRepository(repo),
		WebhookURL:    "/webhooks/github/" + repo.ID,
		WebhookSecret: secret,
	})
}

// ListRepositories lists connected repositories
// @Summary List repositories
// @Tags repositories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{repositories=[]types.Repository,count=int}
// @Failure 401 {object} types.ErrorResponse
// @Router /v1/repositories [get]
func (h *RepositoryHandler) ListRepositories(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	repos, err := h.repos.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to list repositories")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch repositories")
		return
	}

	out := make([]types.Repository, len(repos))
	for i, repo := range repos {
		out[i] = types.NewRepository(repo)
	}
	c.JSON(http.StatusOK, gin.H{
		"repositories": out,
		"count":        len(out),
	})
}

// GetRepository returns one repository
// @Summary Get a repository
// @Tags repositories
// @Produce json
// @Security BearerAuth
// @Param repositoryID path string true "Repository ID"
// @Success 200 {object} types.Repository
// @Failure 404 {object} types.ErrorResponse
// @Router /v1/repositories/{repositoryID} [get]
func (h *RepositoryHandler) GetRepository(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	repo, err := h.repos.Get(c.Request.Context(), orgID, c.Param("repositoryID"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Repository not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch repository")
		return
	}
	c.JSON(http.StatusOK, types.NewRepository(repo))
}

// DeactivateRepository stops scanning a repository. Its history is kept.
// @Summary Deactivate a repository
// @Tags repositories
// @Security BearerAuth
// @Param repositoryID path string true "Repository ID"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /v1/repositories/{repositoryID} [delete]
func (h *RepositoryHandler) DeactivateRepository(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	id := c.Param("repositoryID")
	if err := h.repos.Deactivate(c.Request.Context(), orgID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Repository not found")
			return
		}
		h.log.WithError(err).WithField("repository_id", id).Error("failed to deactivate repository")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to deactivate repository")
		return
	}

	h.log.WithFields(logrus.Fields{"organization_id": orgID, "repository_id": id}).Info("repository deactivated")
	c.Status(http.StatusNoContent)
}

func generateWebhookSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "whsec_" + hex.EncodeToString(b), nil
}
