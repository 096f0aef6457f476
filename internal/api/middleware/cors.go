// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	corsAllowMethods  = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders  = "Authorization,Content-Type"
	corsExposeHeaders = "X-RateLimit-Limit,X-RateLimit-Remaining,X-RateLimit-Reset"
)

// originPolicy matches request origins against exact origins and
// "https://*.example.com" subdomain patterns.
type originPolicy struct {
	any      bool
	exact    map[string]struct{}
	suffixes []string
}

func (p *originPolicy) allows(origin string) bool {
	if _, ok := p.exact[origin]; ok {
		return true
	}
	for _, suffix := range p.suffixes {
		scheme, host, ok := strings.Cut(suffix, "*")
		if ok && strings.HasPrefix(origin, scheme) && strings.HasSuffix(origin, host) &&
			len(origin) > len(scheme)+len(host) {
			return true
		}
	}
	return false
}

// NewCORSMiddleware lets governance dashboards call the API from the browser.
// A bare "*" is honored outside release mode only.
func NewCORSMiddleware(allowedOrigins []string, ginMode string, log *logrus.Entry) gin.HandlerFunc {
	policy := &originPolicy{exact: map[string]struct{}{}}
	for _, origin := range allowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		switch {
		case origin == "":
		case origin == "*":
			if ginMode == gin.ReleaseMode {
				log.Warn("CORS wildcard origin ignored in release mode; only explicit origins are allowed")
				continue
			}
			policy.any = true
		case strings.Contains(origin, "://*."):
			policy.suffixes = append(policy.suffixes, origin)
		default:
			policy.exact[origin] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			switch {
			case policy.any:
				c.Header("Access-Control-Allow-Origin", "*")
			case policy.allows(origin):
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Access-Control-Expose-Headers", corsExposeHeaders)
			c.Header("Access-Control-Max-Age", "7200")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
