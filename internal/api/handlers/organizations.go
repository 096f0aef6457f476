// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/api/types"
	"github.com/regrada-ai/aidebt-be/internal/storage"
)

type OrganizationHandler struct {
	orgRepo storage.OrganizationRepository
	log     *logrus.Entry
}

func NewOrganizationHandler(orgRepo storage.OrganizationRepository, log *logrus.Entry) *OrganizationHandler {
	return &OrganizationHandler{orgRepo: orgRepo, log: log}
}

// GetCurrentOrganization returns the organization of the API key
// @Summary Get your organization
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} types.Organization
// @Failure 404 {object} types.ErrorResponse
// @Router /v1/organizations/current [get]
func (h *OrganizationHandler) GetCurrentOrganization(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	org, err := h.orgRepo.Get(c.Request.Context(), orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Organization not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch organization")
		return
	}
	c.JSON(http.StatusOK, types.NewOrganization(org))
}

// UpdateCurrentOrganization changes organization settings
// @Summary Update your organization
// @Description Requires the admin scope. Setting github_token to an empty string removes it.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body types.UpdateOrganizationRequest true "Organization settings"
// @Success 200 {object} types.Organization
// @Failure 400 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /v1/organizations/current [put]
func (h *OrganizationHandler) UpdateCurrentOrganization(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req types.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request parameters")
		return
	}

	ctx := c.Request.Context()
	org, err := h.orgRepo.Get(ctx, orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Organization not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch organization")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name cannot be empty")
			return
		}
		org.Name = name
	}
	if req.GitHubOrgName != nil {
		org.GitHubOrgName = strings.TrimSpace(*req.GitHubOrgName)
	}
	if req.GitHubToken != nil {
		org.GitHubToken = strings.TrimSpace(*req.GitHubToken)
	}
	if req.AlertEmails != nil {
		org.AlertEmails = req.AlertEmails
	}

	if err := h.orgRepo.Update(ctx, org); err != nil {
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to update organization")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update organization")
		return
	}

	updated, err := h.orgRepo.Get(ctx, orgID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch organization")
		return
	}
	c.JSON(http.StatusOK, types.NewOrganization(updated))
}
