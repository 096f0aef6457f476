// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/api/middleware"
	"github.com/regrada-ai/aidebt-be/internal/api/types"
	"github.com/regrada-ai/aidebt-be/internal/storage"
)

// Scopes granted to API keys
const (
	ScopeAdmin       = "admin"
	ScopeScansWrite  = "scans:write"
	ScopeScansRead   = "scans:read"
	ScopeScoresRead  = "scores:read"
	ScopeAlertsWrite = "alerts:write"
)

var defaultAPIKeyScopes = []string{ScopeScansWrite, ScopeScansRead, ScopeScoresRead, ScopeAlertsWrite}

var knownScopes = map[string]bool{
	ScopeAdmin:       true,
	ScopeScansWrite:  true,
	ScopeScansRead:   true,
	ScopeScoresRead:  true,
	ScopeAlertsWrite: true,
}

// KeyCache drops cached key validations
type KeyCache interface {
	InvalidateKey(ctx context.Context, keyHash string)
}

type APIKeyHandler struct {
	apiKeyRepo storage.APIKeyRepository
	orgRepo    storage.OrganizationRepository
	cache      KeyCache
	log        *logrus.Entry
}

func NewAPIKeyHandler(apiKeyRepo storage.APIKeyRepository, orgRepo storage.OrganizationRepository, cache KeyCache, log *logrus.Entry) *APIKeyHandler {
	return &APIKeyHandler{apiKeyRepo: apiKeyRepo, orgRepo: orgRepo, cache: cache, log: log}
}

// ListAPIKeys returns API keys for the authenticated organization.
// @Summary List API keys
// @Description Get all active API keys for your organization
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{api_keys=[]types.APIKeyResponse,count=int}
// @Failure 401 {object} types.ErrorResponse
// @Router /v1/api-keys [get]
func (h *APIKeyHandler) ListAPIKeys(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	keys, err := h.apiKeyRepo.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch API keys")
		return
	}

	responses := make([]types.APIKeyResponse, len(keys))
	for i, key := range keys {
		responses[i] = types.NewAPIKeyResponse(key)
	}

	c.JSON(http.StatusOK, gin.H{
		"api_keys": responses,
		"count":    len(responses),
	})
}

// CreateAPIKey creates a new API key for the authenticated organization.
// @Summary Create a new API key
// @Description Requires the admin scope. The secret is only returned once. The tier is inherited from the organization.
// @Tags api-keys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body types.CreateAPIKeyRequest true "API key details"
// @Success 201 {object} types.CreateAPIKeyResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /v1/api-keys [post]
func (h *APIKeyHandler) CreateAPIKey(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req types.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request parameters")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	scopes := req.Scopes
	if len(scopes) == 0 {
		scopes = defaultAPIKeyScopes
	}
	for _, s := range scopes {
		if !knownScopes[s] {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown scope "+s)
			return
		}
	}

	org, err := h.orgRepo.Get(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch organization")
		return
	}

	secret, keyHash, keyPrefix, err := GenerateAPIKey()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate API key")
		return
	}

	apiKey := &storage.APIKey{
		OrganizationID: orgID,
		KeyHash:        keyHash,
		KeyPrefix:      keyPrefix,
		Name:           name,
		Tier:           org.Tier,
		Scopes:         scopes,
		RateLimitRPM:   middleware.RateLimitForTier(org.Tier),
		ExpiresAt:      req.ExpiresAt,
	}

	if err := h.apiKeyRepo.Create(c.Request.Context(), apiKey); err != nil {
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to create api key")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create API key")
		return
	}

	h.log.WithFields(logrus.Fields{
		"organization_id": orgID,
		"api_key_id":      apiKey.ID,
		"key_prefix":      keyPrefix,
	}).Info("api key created")

	c.JSON(http.StatusCreated, types.CreateAPIKeyResponse{
		APIKey: types.NewAPIKeyResponse(apiKey),
		Secret: secret,
	})
}

// RevokeAPIKey revokes an API key
// @Summary Revoke an API key
// @Description Requires the admin scope.
// @Tags api-keys
// @Security BearerAuth
// @Param keyID path string true "API key ID"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /v1/api-keys/{keyID} [delete]
func (h *APIKeyHandler) RevokeAPIKey(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	keyID := c.Param("keyID")

	revoked, err := h.apiKeyRepo.Revoke(ctx, orgID, keyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "API key not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to revoke API key")
		return
	}
	if h.cache != nil {
		h.cache.InvalidateKey(ctx, revoked.KeyHash)
	}

	h.log.WithFields(logrus.Fields{"organization_id": orgID, "api_key_id": keyID}).Info("api key revoked")
	c.Status(http.StatusNoContent)
}

// GenerateAPIKey returns a new secret with its stored hash and display prefix
func GenerateAPIKey() (secret, hash, prefix string, err error) {
	randomBytes := make([]byte, 32)
	if _, err = rand.Read(randomBytes); err != nil {
		return "", "", "", err
	}

	secret = "ad_live_" + base64.RawURLEncoding.EncodeToString(randomBytes)
	hash = middleware.HashAPIKey(secret)
	prefix = secret[:16]
	return secret, hash, prefix, nil
}
