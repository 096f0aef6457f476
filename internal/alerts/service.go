// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// Notifier receives alerts after they are stored
type Notifier interface {
	Notify(ctx context.Context, alert *aidebt.Alert) error
}

// Service persists alerts raised by the engine and hands them to the notifier
type Service struct {
	engine   *Engine
	alerts   storage.AlertRepository
	notifier Notifier
	now      func() time.Time
	log      *logrus.Entry
}

// NewService creates an alert service. notifier may be nil.
func NewService(engine *Engine, alerts storage.AlertRepository, notifier Notifier, log *logrus.Entry) *Service {
	return &Service{
		engine:   engine,
		alerts:   alerts,
		notifier: notifier,
		now:      time.Now,
		log:      log,
	}
}

// Raise evaluates ev and stores every alert it produces. Notification
// failures are logged and do not fail the call.
func (s *Service) Raise(ctx context.Context, ev Evaluation) ([]*aidebt.Alert, error) {
	if ev.At.IsZero() {
		ev.At = s.now()
	}

	raised := s.engine.Evaluate(ev)
	created := make([]*aidebt.Alert, 0, len(raised))
	for _, alert := range raised {
		if err := s.alerts.Create(ctx, alert); err != nil {
			return created, fmt.Errorf("failed to create %s alert: %w", alert.Category, err)
		}
		created = append(created, alert)
		alertsRaised.WithLabelValues(string(alert.Category), string(alert.Severity)).Inc()

		log := s.log.WithFields(logrus.Fields{
			"alert_id":        alert.ID,
			"organization_id": alert.OrganizationID,
			"category":        alert.Category,
			"severity":        alert.Severity,
		})
		log.Info("alert raised")

		if s.notifier != nil {
			if err := s.notifier.Notify(ctx, alert); err != nil {
				log.WithError(err).Warn("alert notification failed")
			}
		}
	}
	return created, nil
}

// Acknowledge marks an active alert as seen
func (s *Service) Acknowledge(ctx context.Context, orgID, id string) (*aidebt.Alert, error) {
	return s.transition(ctx, orgID, id, aidebt.AlertAcknowledged)
}

// Dismiss closes an active alert without action
func (s *Service) Dismiss(ctx context.Context, orgID, id string) (*aidebt.Alert, error) {
	return s.transition(ctx, orgID, id, aidebt.AlertDismissed)
}

// Resolve closes an active alert as handled
func (s *Service) Resolve(ctx context.Context, orgID, id string) (*aidebt.Alert, error) {
	return s.transition(ctx, orgID, id, aidebt.AlertResolved)
}

func (s *Service) transition(ctx context.Context, orgID, id string, to aidebt.AlertStatus) (*aidebt.Alert, error) {
	alert, err := s.alerts.Transition(ctx, orgID, id, to, s.now())
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"alert_id":        id,
		"organization_id": orgID,
		"status":          to,
	}).Info("alert status changed")
	return alert, nil
}
