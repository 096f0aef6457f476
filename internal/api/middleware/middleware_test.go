// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/internal/storage/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newKey(t *testing.T, store *memory.Store, secret string, mutate func(*storage.APIKey)) *storage.APIKey {
	t.Helper()
	key := &storage.APIKey{
		OrganizationID: "org-1",
		KeyHash:        HashAPIKey(secret),
		KeyPrefix:      secret[:8],
		Name:           "test",
		Tier:           "team",
		Scopes:         []string{"scans:read"},
	}
	if mutate != nil {
		mutate(key)
	}
	require.NoError(t, store.APIKeys().Create(context.Background(), key))
	return key
}

func authRouter(store *memory.Store) *gin.Engine {
	m := NewAuthMiddleware(store.APIKeys(), nil, testLog())
	r := gin.New()
	r.GET("/whoami", m.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"organization_id": c.GetString(ContextOrganizationID),
			"tier":            c.GetString(ContextTier),
		})
	})
	r.GET("/admin", m.Authenticate(), RequireScope("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_ValidKey(t *testing.T) {
	store := memory.NewStore()
	newKey(t, store, "ad_live_valid-secret", nil)

	w := get(authRouter(store), "/whoami", "Bearer ad_live_valid-secret")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"organization_id":"org-1","tier":"team"}`, w.Body.String())
}

func TestAuthenticate_UpdatesLastUsed(t *testing.T) {
	store := memory.NewStore()
	key := newKey(t, store, "ad_live_valid-secret", nil)

	get(authRouter(store), "/whoami", "Bearer ad_live_valid-secret")

	assert.Eventually(t, func() bool {
		keys, err := store.APIKeys().ListByOrganization(context.Background(), "org-1")
		return err == nil && len(keys) == 1 && keys[0].ID == key.ID && keys[0].LastUsedAt != nil
	}, time.Second, 10*time.Millisecond)
}

func TestAuthenticate_Rejections(t *testing.T) {
	store := memory.NewStore()
	past := time.Now().Add(-time.Hour)
	newKey(t, store, "ad_live_expired-secret", func(k *storage.APIKey) { k.ExpiresAt = &past })
	revoked := newKey(t, store, "ad_live_revoked-secret", nil)
	_, err := store.APIKeys().Revoke(context.Background(), revoked.OrganizationID, revoked.ID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Missing authorization header"},
		{"wrong scheme", "Basic abc", "Invalid authorization header format"},
		{"empty token", "Bearer ", "Invalid authorization header format"},
		{"unknown key", "Bearer ad_live_nope", "Invalid API key"},
		{"revoked key", "Bearer ad_live_revoked-secret", "Invalid API key"},
		{"expired key", "Bearer ad_live_expired-secret", "API key has expired"},
	}
	r := authRouter(store)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/whoami", tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestRequireScope(t *testing.T) {
	store := memory.NewStore()
	newKey(t, store, "ad_live_reader-secret", nil)
	newKey(t, store, "ad_live_admin-secret", func(k *storage.APIKey) { k.Scopes = []string{"admin"} })
	newKey(t, store, "ad_live_legacy-secret", func(k *storage.APIKey) { k.Scopes = nil })
	r := authRouter(store)

	w := get(r, "/admin", "Bearer ad_live_reader-secret")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"FORBIDDEN"`)

	assert.Equal(t, http.StatusOK, get(r, "/admin", "Bearer ad_live_admin-secret").Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", "Bearer ad_live_legacy-secret").Code)
}

func TestRateLimit_PassesThroughWithoutRedis(t *testing.T) {
	m := NewRateLimitMiddleware(nil, testLog())
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		c.Set(ContextAPIKeyHash, "abc")
		c.Set(ContextTier, "starter")
	}, m.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 20; i++ {
		w := get(r, "/", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitForTier(t *testing.T) {
	assert.Equal(t, 10, RateLimitForTier("starter"))
	assert.Equal(t, 100, RateLimitForTier("team"))
	assert.Equal(t, 500, RateLimitForTier("scale"))
	assert.Equal(t, 2000, RateLimitForTier("enterprise"))
	assert.Equal(t, 10, RateLimitForTier("unknown"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(NewCORSMiddleware([]string{"https://app.example.com", " "}, gin.ReleaseMode, testLog()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS_WildcardIgnoredInRelease(t *testing.T) {
	for mode, want := range map[string]string{gin.ReleaseMode: "", gin.DebugMode: "*"} {
		r := gin.New()
		r.Use(NewCORSMiddleware([]string{"*"}, mode, testLog()))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, want, w.Header().Get("Access-Control-Allow-Origin"), mode)
	}
}

func TestCORS_SubdomainPattern(t *testing.T) {
	r := gin.New()
	r.Use(NewCORSMiddleware([]string{"https://*.preview.example.com/"}, gin.ReleaseMode, testLog()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		origin string
		want   string
	}{
		{"https://pr-12.preview.example.com", "https://pr-12.preview.example.com"},
		{"https://.preview.example.com", ""},
		{"http://pr-12.preview.example.com", ""},
		{"https://preview.example.com.evil.io", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", tt.origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"), tt.origin)
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-RateLimit-Remaining")
	}
}
