// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package notify delivers stored alerts to the channels an operator configured.
package notify

import (
	"context"
	"fmt"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// Message is one alert addressed to an organization
type Message struct {
	Alert *aidebt.Alert
	// Recipients are the organization's alert e-mail addresses
	Recipients []string
}

// Channel is implemented by each delivery mechanism
type Channel interface {
	Name() string
	IsConfigured() bool
	Send(ctx context.Context, msg Message) error
}

func subject(a *aidebt.Alert) string {
	return fmt.Sprintf("[AI debt][%s] %s", a.Severity, a.Title)
}
