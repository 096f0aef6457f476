// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// scansQueued counts scans created, by trigger source and scan type
	scansQueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aidebt",
		Name:      "scans_queued_total",
		Help:      "Scans created in the pending state.",
	}, []string{"trigger", "scan_type"})

	scansFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aidebt",
		Name:      "scans_finished_total",
		Help:      "Scans that reached a terminal state.",
	}, []string{"status"})

	scanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "aidebt",
		Name:      "scan_duration_seconds",
		Help:      "Time from claim to completion of successful scans.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
	}, []string{"scan_type"})

	claimConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "aidebt",
		Name:      "scan_claim_conflicts_total",
		Help:      "Claims of a specific scan lost to another worker.",
	})
)
