// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package handlers implements the HTTP endpoints of the governance API.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/regrada-ai/aidebt-be/internal/api/middleware"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// organizationID returns the authenticated organization, answering 401 when absent
func organizationID(c *gin.Context) (string, bool) {
	orgID := c.GetString(middleware.ContextOrganizationID)
	if orgID == "" {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Organization not found in token")
		return "", false
	}
	return orgID, true
}

// pagination reads limit and offset, answering 400 on malformed values
func pagination(c *gin.Context) (limit, offset int, ok bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a positive integer")
		return 0, 0, false
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "offset must be a non-negative integer")
		return 0, 0, false
	}
	return limit, offset, true
}
