// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/storage"
)

// Context keys set by Authenticate
const (
	ContextOrganizationID = "organization_id"
	ContextTier           = "tier"
	ContextAPIKeyHash     = "api_key_hash"
	ContextScopes         = "scopes"
)

const apiKeyCacheTTL = 5 * time.Minute

// cachedKey is what Authenticate stores in redis for a validated key
type cachedKey struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Tier           string     `json:"tier"`
	Scopes         []string   `json:"scopes"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

type AuthMiddleware struct {
	apiKeyRepo  storage.APIKeyRepository
	redisClient *redis.Client
	log         *logrus.Entry
	now         func() time.Time
}

// NewAuthMiddleware authenticates bearer API keys. redisClient may be nil,
// in which case every request is validated against the database.
func NewAuthMiddleware(apiKeyRepo storage.APIKeyRepository, redisClient *redis.Client, log *logrus.Entry) *AuthMiddleware {
	return &AuthMiddleware{
		apiKeyRepo:  apiKeyRepo,
		redisClient: redisClient,
		log:         log,
		now:         time.Now,
	}
}

// HashAPIKey returns the hex SHA-256 digest stored for an API key
func HashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(hash[:])
}

// InvalidateKey drops a key from the cache so revocation takes effect immediately
func (m *AuthMiddleware) InvalidateKey(ctx context.Context, keyHash string) {
	if m.redisClient == nil {
		return
	}
	if err := m.redisClient.Del(ctx, "apikey:"+keyHash).Err(); err != nil {
		m.log.WithError(err).Warn("failed to invalidate cached api key")
	}
}

func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authorization header")
			return
		}

		// Expected format: "Bearer ad_live_..."
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid authorization header format")
			return
		}

		keyHash := HashAPIKey(parts[1])
		ctx := c.Request.Context()

		if key, ok := m.fromCache(ctx, keyHash); ok {
			if key.ExpiresAt != nil && key.ExpiresAt.Before(m.now()) {
				abortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "API key has expired")
				return
			}
			setPrincipal(c, keyHash, key)
			c.Next()
			return
		}

		apiKeyData, err := m.apiKeyRepo.GetByHash(ctx, keyHash)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				abortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key")
				return
			}
			m.log.WithError(err).Error("failed to validate api key")
			abortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to validate API key")
			return
		}

		if apiKeyData.RevokedAt != nil {
			abortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "API key has been revoked")
			return
		}
		if apiKeyData.ExpiresAt != nil && apiKeyData.ExpiresAt.Before(m.now()) {
			abortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "API key has expired")
			return
		}

		key := cachedKey{
			ID:             apiKeyData.ID,
			OrganizationID: apiKeyData.OrganizationID,
			Tier:           apiKeyData.Tier,
			Scopes:         apiKeyData.Scopes,
			ExpiresAt:      apiKeyData.ExpiresAt,
		}
		m.toCache(ctx, keyHash, key)
		setPrincipal(c, keyHash, key)

		// Update last used timestamp without blocking the request
		go func(id string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.apiKeyRepo.UpdateLastUsed(ctx, id); err != nil {
				m.log.WithError(err).WithField("api_key_id", id).Warn("failed to update api key last use")
			}
		}(apiKeyData.ID)

		c.Next()
	}
}

// RequireScope rejects keys that do not grant scope
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := storage.APIKey{Scopes: c.GetStringSlice(ContextScopes)}
		if !key.HasScope(scope) {
			abortError(c, http.StatusForbidden, "FORBIDDEN", "API key lacks the "+scope+" scope")
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) fromCache(ctx context.Context, keyHash string) (cachedKey, bool) {
	var key cachedKey
	if m.redisClient == nil {
		return key, false
	}
	raw, err := m.redisClient.Get(ctx, "apikey:"+keyHash).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.log.WithError(err).Warn("api key cache read failed")
		}
		return key, false
	}
	if err := json.Unmarshal(raw, &key); err != nil || key.OrganizationID == "" {
		return key, false
	}
	return key, true
}

func (m *AuthMiddleware) toCache(ctx context.Context, keyHash string, key cachedKey) {
	if m.redisClient == nil {
		return
	}
	raw, err := json.Marshal(key)
	if err != nil {
		return
	}
	if err := m.redisClient.Set(ctx, "apikey:"+keyHash, raw, apiKeyCacheTTL).Err(); err != nil {
		m.log.WithError(err).Warn("api key cache write failed")
	}
}

func setPrincipal(c *gin.Context, keyHash string, key cachedKey) {
	c.Set(ContextAPIKeyHash, keyHash)
	c.Set(ContextOrganizationID, key.OrganizationID)
	c.Set(ContextTier, key.Tier)
	c.Set(ContextScopes, key.Scopes)
}

func abortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
