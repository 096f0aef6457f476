// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/scan"
	"github.com/regrada-ai/aidebt-be/internal/source/github"
	"github.com/regrada-ai/aidebt-be/internal/storage"
)

// EventHandler routes verified repository events
type EventHandler interface {
	HandleEvent(ctx context.Context, repo *storage.Repository, ev scan.Event) scan.EventResult
}

type WebhookHandler struct {
	repos  storage.RepositoryRepository
	events EventHandler
	log    *logrus.Entry
}

func NewWebhookHandler(repos storage.RepositoryRepository, events EventHandler, log *logrus.Entry) *WebhookHandler {
	return &WebhookHandler{repos: repos, events: events, log: log}
}

// GitHubWebhook receives GitHub deliveries for one connected repository
// @Summary Receive a GitHub webhook
// @Description Authenticated by the X-Hub-Signature-256 HMAC of the repository webhook secret.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param repositoryID path string true "Repository ID"
// @Success 200 {object} scan.EventResult
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /webhooks/github/{repositoryID} [post]
func (h *WebhookHandler) GitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()
	repoID := c.Param("repositoryID")

	repo, err := h.repos.GetForWebhook(ctx, repoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Repository not found")
			return
		}
		h.log.WithError(err).WithField("repository_id", repoID).Error("failed to load webhook repository")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load repository")
		return
	}

	log := h.log.WithFields(logrus.Fields{
		"repository_id":   repo.ID,
		"organization_id": repo.OrganizationID,
	})

	delivery, err := github.ParseWebhook(c.Request, repo.WebhookSecret)
	switch {
	case errors.Is(err, github.ErrInvalidSignature):
		log.WithError(err).Warn("rejected webhook delivery")
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid webhook signature")
		return
	case errors.Is(err, github.ErrUnsupportedEvent):
		log.WithFields(logrus.Fields{
			"delivery_id": delivery.DeliveryID,
			"event":       delivery.Type,
		}).Debug("ignored webhook delivery")
		c.JSON(http.StatusOK, scan.EventResult{Action: "ignored", Message: "event type is not handled"})
		return
	case err != nil:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed webhook payload")
		return
	}

	if !strings.EqualFold(delivery.Repository, repo.FullName()) {
		log.WithField("payload_repository", delivery.Repository).Warn("webhook repository mismatch")
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Payload does not belong to this repository")
		return
	}

	res := h.events.HandleEvent(ctx, repo, delivery.Event)
	log.WithFields(logrus.Fields{
		"delivery_id": delivery.DeliveryID,
		"event":       delivery.Type,
		"action":      res.Action,
	}).Info("webhook delivery handled")
	c.JSON(http.StatusOK, res)
}
