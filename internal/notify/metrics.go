// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "aidebt_notifications_total",
	Help: "Alert notifications by channel and outcome",
}, []string{"channel", "outcome"})
