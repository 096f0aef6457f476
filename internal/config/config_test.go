// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 15, cfg.AlertScoreDropThreshold)
	assert.Equal(t, 5*time.Second, cfg.ScanPollInterval)
	assert.Zero(t, cfg.ScanStaleTimeout)
	assert.Equal(t, 15*time.Minute, cfg.ReportURLExpiry)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
	assert.Empty(t, cfg.AlertRecipients())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE", "memory")
	t.Setenv("SCAN_WORKERS", "4")
	t.Setenv("SCAN_STALE_TIMEOUT", "30m")
	t.Setenv("SCAN_SCHEDULE", "0 3 * * *")
	t.Setenv("ALERT_EMAIL_TO", "a@acme.dev, b@acme.dev,")
	t.Setenv("ALERT_EMAIL_FROM", "alerts@acme.dev")
	t.Setenv("GITHUB_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("DATABASE_DEBUG", "true")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 4, cfg.ScanWorkers)
	assert.Equal(t, 30*time.Minute, cfg.ScanStaleTimeout)
	assert.Equal(t, "0 3 * * *", cfg.ScanSchedule)
	assert.Equal(t, []string{"a@acme.dev", "b@acme.dev"}, cfg.AlertRecipients())
	assert.InDelta(t, 2.5, cfg.GitHubRequestsPerSecond, 1e-9)
	assert.True(t, cfg.DatabaseDebug)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"zero workers", map[string]string{"SCAN_WORKERS": "0"}},
		{"unknown storage", map[string]string{"STORAGE": "sqlite"}},
		{"postgres without dsn", map[string]string{"STORAGE": "postgres", "DATABASE_URL": ""}},
		{"bad schedule", map[string]string{"SCAN_SCHEDULE": "every night"}},
		{"bad threshold", map[string]string{"ALERT_SCORE_DROP_THRESHOLD": "0"}},
		{"bad severity", map[string]string{"ALERT_MIN_SEVERITY": "critical"}},
		{"bad sender", map[string]string{"ALERT_EMAIL_FROM": "not-an-address"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	log := cfg.NewLogger()
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	cfg = &Config{LogLevel: "nonsense", LogFormat: "text"}
	assert.Equal(t, logrus.InfoLevel, cfg.NewLogger().GetLevel())
}
