// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type RateLimitMiddleware struct {
	redisClient *redis.Client
	log         *logrus.Entry
	now         func() time.Time
}

// NewRateLimitMiddleware limits requests per API key per minute. A nil
// redisClient disables limiting.
func NewRateLimitMiddleware(redisClient *redis.Client, log *logrus.Entry) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redisClient: redisClient,
		log:         log,
		now:         time.Now,
	}
}

func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		keyHash := c.GetString(ContextAPIKeyHash)
		if keyHash == "" || m.redisClient == nil {
			c.Next()
			return
		}

		limit := RateLimitForTier(c.GetString(ContextTier))

		ctx := c.Request.Context()
		window := m.now().Unix() / 60

		rateLimitKey := fmt.Sprintf("ratelimit:%s:%d", keyHash, window)

		count, err := m.redisClient.Incr(ctx, rateLimitKey).Result()
		if err != nil {
			// fail open
			m.log.WithError(err).Warn("rate limit counter unavailable")
			c.Next()
			return
		}

		if count == 1 {
			m.redisClient.Expire(ctx, rateLimitKey, 2*time.Minute)
		}

		reset := (window + 1) * 60
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, limit-int(count))))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMIT_EXCEEDED",
					"message": "Rate limit exceeded",
					"details": gin.H{
						"limit": limit,
						"reset": reset,
					},
				},
			})
			return
		}

		c.Next()
	}
}

// RateLimitForTier returns the requests per minute allowed for an organization tier
func RateLimitForTier(tier string) int {
	switch tier {
	case "starter":
		return 10
	case "team":
		return 100
	case "scale":
		return 500
	case "enterprise":
		return 2000
	default:
		return 10
	}
}
