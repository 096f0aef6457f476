// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

var severityOrder = map[aidebt.AlertSeverity]int{
	aidebt.SeverityLow:    1,
	aidebt.SeverityMedium: 2,
	aidebt.SeverityHigh:   3,
}

// Dispatcher fans an alert out to every configured channel
type Dispatcher struct {
	channels    []Channel
	orgs        storage.OrganizationRepository
	minSeverity aidebt.AlertSeverity
	log         *logrus.Entry
}

// NewDispatcher keeps the channels that are configured. orgs supplies each
// organization's alert recipients and may be nil. An empty minSeverity
// sends everything.
func NewDispatcher(orgs storage.OrganizationRepository, minSeverity aidebt.AlertSeverity, log *logrus.Entry, channels ...Channel) *Dispatcher {
	d := &Dispatcher{orgs: orgs, minSeverity: minSeverity, log: log}
	for _, ch := range channels {
		if ch != nil && ch.IsConfigured() {
			d.channels = append(d.channels, ch)
		}
	}
	return d
}

// Channels returns the names of the active channels
func (d *Dispatcher) Channels() []string {
	names := make([]string, len(d.channels))
	for i, ch := range d.channels {
		names[i] = ch.Name()
	}
	return names
}

// Notify sends alert to every channel. A failing channel does not stop the
// others; the failures are returned joined.
func (d *Dispatcher) Notify(ctx context.Context, alert *aidebt.Alert) error {
	if len(d.channels) == 0 || !d.shouldSend(alert) {
		return nil
	}

	msg := Message{Alert: alert}
	if d.orgs != nil {
		org, err := d.orgs.Get(ctx, alert.OrganizationID)
		if err != nil {
			d.log.WithError(err).WithField("organization_id", alert.OrganizationID).Warn("failed to load alert recipients")
		} else {
			msg.Recipients = org.AlertEmails
		}
	}

	var errs []error
	for _, ch := range d.channels {
		if err := ch.Send(ctx, msg); err != nil {
			notificationsSent.WithLabelValues(ch.Name(), "error").Inc()
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			continue
		}
		notificationsSent.WithLabelValues(ch.Name(), "ok").Inc()
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) shouldSend(alert *aidebt.Alert) bool {
	if d.minSeverity == "" {
		return true
	}
	return severityOrder[alert.Severity] >= severityOrder[d.minSeverity]
}
