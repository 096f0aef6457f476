// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package github

import (
	"errors"
	"fmt"
	"net/http"

	gogithub "github.com/google/go-github/v68/github"

	"github.com/regrada-ai/aidebt-be/internal/scan"
)

var (
	// ErrInvalidSignature means the payload was not signed with the repository secret
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrUnsupportedEvent means the event type carries nothing to act on
	ErrUnsupportedEvent = errors.New("unsupported webhook event")
)

// WebhookEvent is a verified delivery translated for the scan orchestrator
type WebhookEvent struct {
	DeliveryID string
	Type       string
	// Repository is the owner/name the payload refers to
	Repository string
	Event      scan.Event
}

// ParseWebhook verifies the request signature against secret and decodes the
// payload. An empty secret rejects every delivery. Pings, branch deletions and
// unknown event types return ErrUnsupportedEvent with the delivery metadata
// filled in.
func ParseWebhook(r *http.Request, secret string) (*WebhookEvent, error) {
	// ValidatePayload skips verification for an empty key
	if secret == "" {
		return nil, fmt.Errorf("%w: repository has no webhook secret", ErrInvalidSignature)
	}
	payload, err := gogithub.ValidatePayload(r, []byte(secret))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &WebhookEvent{
		DeliveryID: gogithub.DeliveryID(r),
		Type:       gogithub.WebHookType(r),
	}
	raw, err := gogithub.ParseWebHook(out.Type, payload)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrUnsupportedEvent, err)
	}

	switch e := raw.(type) {
	case *gogithub.PushEvent:
		out.Repository = e.GetRepo().GetFullName()
		if e.GetDeleted() {
			return out, ErrUnsupportedEvent
		}
		out.Event = scan.Event{Kind: scan.EventPush, Ref: e.GetRef()}
	case *gogithub.PullRequestEvent:
		out.Repository = e.GetRepo().GetFullName()
		pr := e.GetPullRequest()
		out.Event = scan.Event{
			Kind:     scan.EventPullRequest,
			Action:   e.GetAction(),
			Ref:      pr.GetHead().GetRef(),
			PRNumber: pr.GetNumber(),
			PRAuthor: pr.GetUser().GetLogin(),
		}
	case *gogithub.PullRequestReviewEvent:
		out.Repository = e.GetRepo().GetFullName()
		pr := e.GetPullRequest()
		review := e.GetReview()
		out.Event = scan.Event{
			Kind:        scan.EventPullRequestReview,
			Action:      e.GetAction(),
			PRNumber:    pr.GetNumber(),
			PRAuthor:    pr.GetUser().GetLogin(),
			Reviewer:    review.GetUser().GetLogin(),
			ReviewState: review.GetState(),
			ReviewerBot: review.GetUser().GetType() == "Bot",
		}
	default:
		return out, ErrUnsupportedEvent
	}
	return out, nil
}
