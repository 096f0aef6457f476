package aidebt

import (
	"encoding/json"
	"time"
)

// AlertSeverity grades how urgently an alert needs attention
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// AlertStatus is the lifecycle state of an alert
type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertDismissed    AlertStatus = "dismissed"
	AlertResolved     AlertStatus = "resolved"
)

// CanTransition reports whether an alert may move from s to next.
// Only active alerts change state, and every change is one-way.
func (s AlertStatus) CanTransition(next AlertStatus) bool {
	if s != AlertActive {
		return false
	}
	switch next {
	case AlertAcknowledged, AlertDismissed, AlertResolved:
		return true
	}
	return false
}

// AlertCategory names the rule that produced an alert
type AlertCategory string

const (
	CategoryZoneDowngrade    AlertCategory = "risk_zone_downgrade"
	CategoryScoreDrop        AlertCategory = "score_drop"
	CategoryUnreviewedMerges AlertCategory = "unreviewed_ai_merges"
)

// Alert is a governance notification
type Alert struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	RepositoryID   *string         `json:"repository_id,omitempty"`
	ScanID         *string         `json:"scan_id,omitempty"`
	Severity       AlertSeverity   `json:"severity"`
	Category       AlertCategory   `json:"category"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Status         AlertStatus     `json:"status"`
	Context        json.RawMessage `json:"context,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	AcknowledgedAt *time.Time      `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty"`
}
