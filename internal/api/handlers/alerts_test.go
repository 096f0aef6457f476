// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regrada-ai/aidebt-be/internal/api/types"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

func (h *harness) alert(category aidebt.AlertCategory) *aidebt.Alert {
	h.t.Helper()
	a := &aidebt.Alert{
		OrganizationID: h.orgID,
		Severity:       aidebt.SeverityHigh,
		Category:       category,
		Title:          "AI debt zone worsened",
	}
	require.NoError(h.t, h.store.Alerts().Create(context.Background(), a))
	return a
}

func TestAlertTransitions(t *testing.T) {
	tests := []struct {
		action string
		status aidebt.AlertStatus
	}{
		{"acknowledge", aidebt.AlertAcknowledged},
		{"dismiss", aidebt.AlertDismissed},
		{"resolve", aidebt.AlertResolved},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			h := newHarness(t)
			a := h.alert(aidebt.CategoryZoneDowngrade)

			w := h.do(http.MethodPost, "/v1/alerts/"+a.ID+"/"+tt.action, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.status, decode[aidebt.Alert](t, w).Status)

			w = h.do(http.MethodPost, "/v1/alerts/"+a.ID+"/"+tt.action, nil)
			assert.Equal(t, http.StatusConflict, w.Code)
			assert.Contains(t, w.Body.String(), `"code":"CONFLICT"`)
		})
	}
}

func TestAlertTransition_NotFound(t *testing.T) {
	h := newHarness(t)
	a := h.alert(aidebt.CategoryScoreDrop)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/v1/alerts/missing/resolve", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/v1/alerts/"+a.ID+"/resolve", nil, "X-Test-Org", "other").Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/v1/alerts/"+a.ID, nil, "X-Test-Org", "other").Code)
}

func TestListAlerts(t *testing.T) {
	h := newHarness(t)
	first := h.alert(aidebt.CategoryZoneDowngrade)
	h.alert(aidebt.CategoryUnreviewedMerges)
	h.do(http.MethodPost, "/v1/alerts/"+first.ID+"/acknowledge", nil)

	w := h.do(http.MethodGet, "/v1/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[types.AlertListResponse](t, w)
	require.Equal(t, 2, all.Count)
	assert.Equal(t, aidebt.CategoryUnreviewedMerges, all.Alerts[0].Category)

	w = h.do(http.MethodGet, "/v1/alerts?status=active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	active := decode[types.AlertListResponse](t, w)
	require.Equal(t, 1, active.Count)
	assert.Equal(t, aidebt.AlertActive, active.Alerts[0].Status)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/v1/alerts?status=snoozed", nil).Code)
}
