// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scan

import "github.com/regrada-ai/aidebt-be/pkg/aidebt"

// Trigger sources recorded on a scan
const (
	TriggerManual   = "manual"
	TriggerWebhook  = "webhook"
	TriggerSchedule = "schedule"
)

// Result codes for failed triggers
const (
	CodeNotFound       = "not_found"
	CodeInactive       = "repository_inactive"
	CodeInvalidRequest = "invalid_request"
	CodeQueueFailed    = "queue_failed"
)

// TriggerRequest asks for scans of one repository, or of every active
// repository of the organization when RepositoryID is empty.
type TriggerRequest struct {
	OrganizationID string
	RepositoryID   string
	Type           aidebt.ScanType
	Trigger        string
	Ref            string
	PRNumber       int
}

// QueuedScan identifies one scan created by a trigger
type QueuedScan struct {
	ScanID       string `json:"scan_id"`
	RepositoryID string `json:"repository_id"`
}

// TriggerResult reports how many scans were queued. Success is false when
// any requested scan could not be queued.
type TriggerResult struct {
	Success bool         `json:"success"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message"`
	Queued  int          `json:"queued"`
	Failed  int          `json:"failed"`
	Scans   []QueuedScan `json:"scans"`
}

// ProcessResult is the outcome of one processing attempt. Processed is false
// when there was nothing to claim or another worker won the claim.
type ProcessResult struct {
	Processed bool                `json:"processed"`
	Success   bool                `json:"success"`
	ScanID    string              `json:"scan_id,omitempty"`
	Status    aidebt.ScanStatus   `json:"status,omitempty"`
	Summary   *aidebt.ScanSummary `json:"summary,omitempty"`
	Error     string              `json:"error,omitempty"`
	Message   string              `json:"message"`
}

// EventKind is a repository event delivered by webhook
type EventKind string

const (
	EventPush              EventKind = "push"
	EventPullRequest       EventKind = "pull_request"
	EventPullRequestReview EventKind = "pull_request_review"
)

// Event is a verified repository event
type Event struct {
	Kind        EventKind
	Action      string
	Ref         string
	PRNumber    int
	PRAuthor    string
	Reviewer    string
	ReviewState string
	ReviewerBot bool
}

// EventResult reports what an event caused
type EventResult struct {
	Action  string `json:"action"` // queued|reviewed|ignored
	ScanID  string `json:"scan_id,omitempty"`
	Updated int    `json:"updated,omitempty"`
	Message string `json:"message"`
}
