// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package alerts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var alertsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aidebt",
	Name:      "alerts_raised_total",
	Help:      "Alerts created by the rule engine.",
}, []string{"category", "severity"})
