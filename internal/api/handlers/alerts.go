// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/api/types"
	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// AlertService changes alert status
type AlertService interface {
	Acknowledge(ctx context.Context, orgID, id string) (*aidebt.Alert, error)
	Dismiss(ctx context.Context, orgID, id string) (*aidebt.Alert, error)
	Resolve(ctx context.Context, orgID, id string) (*aidebt.Alert, error)
}

type AlertHandler struct {
	alerts  storage.AlertRepository
	service AlertService
	log     *logrus.Entry
}

func NewAlertHandler(alerts storage.AlertRepository, service AlertService, log *logrus.Entry) *AlertHandler {
	return &AlertHandler{alerts: alerts, service: service, log: log}
}

// ListAlerts lists alerts newest first
// @Summary List alerts
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Param status query string false "Alert status" Enums(active, acknowledged, dismissed, resolved)
// @Param repository_id query string false "Repository ID"
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} types.AlertListResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /v1/alerts [get]
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	limit, _, ok := pagination(c)
	if !ok {
		return
	}

	status := aidebt.AlertStatus(c.Query("status"))
	switch status {
	case "", aidebt.AlertActive, aidebt.AlertAcknowledged, aidebt.AlertDismissed, aidebt.AlertResolved:
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown alert status")
		return
	}

	alerts, err := h.alerts.List(c.Request.Context(), orgID, storage.AlertFilter{
		Status:       status,
		RepositoryID: c.Query("repository_id"),
		Limit:        limit,
	})
	if err != nil {
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to list alerts")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch alerts")
		return
	}
	c.JSON(http.StatusOK, types.AlertListResponse{Alerts: alerts, Count: len(alerts)})
}

// GetAlert returns one alert
// @Summary Get an alert
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Param alertID path string true "Alert ID"
// @Success 200 {object} aidebt.Alert
// @Failure 404 {object} types.ErrorResponse
// @Router /v1/alerts/{alertID} [get]
func (h *AlertHandler) GetAlert(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	alert, err := h.alerts.Get(c.Request.Context(), orgID, c.Param("alertID"))
	if err != nil {
		h.respondAlertError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// AcknowledgeAlert marks an active alert as seen
// @Summary Acknowledge an alert
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Param alertID path string true "Alert ID"
// @Success 200 {object} aidebt.Alert
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /v1/alerts/{alertID}/acknowledge [post]
func (h *AlertHandler) AcknowledgeAlert(c *gin.Context) {
	h.transition(c, h.service.Acknowledge)
}

// DismissAlert closes an active alert without action
// @Summary Dismiss an alert
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Param alertID path string true "Alert ID"
// @Success 200 {object} aidebt.Alert
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /v1/alerts/{alertID}/dismiss [post]
func (h *AlertHandler) DismissAlert(c *gin.Context) {
	h.transition(c, h.service.Dismiss)
}

// ResolveAlert closes an active alert as handled
// @Summary Resolve an alert
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Param alertID path string true "Alert ID"
// @Success 200 {object} aidebt.Alert
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /v1/alerts/{alertID}/resolve [post]
func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	h.transition(c, h.service.Resolve)
}

func (h *AlertHandler) transition(c *gin.Context, fn func(ctx context.Context, orgID, id string) (*aidebt.Alert, error)) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	alert, err := fn(c.Request.Context(), orgID, c.Param("alertID"))
	if err != nil {
		h.respondAlertError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *AlertHandler) respondAlertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Alert not found")
	case errors.Is(err, storage.ErrInvalidTransition):
		respondError(c, http.StatusConflict, "CONFLICT", "Only active alerts can change status")
	default:
		h.log.WithError(err).Error("alert operation failed")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update alert")
	}
}
