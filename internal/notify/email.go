// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// EmailChannel sends alerts through Amazon SES
type EmailChannel struct {
	client    sesAPI
	fromEmail string
	fromName  string
	// fallback is used when the organization has no alert recipients
	fallback []string
}

func NewEmail(cfg aws.Config, fromEmail, fromName string, fallback []string) *EmailChannel {
	return newEmail(ses.NewFromConfig(cfg), fromEmail, fromName, fallback)
}

func newEmail(client sesAPI, fromEmail, fromName string, fallback []string) *EmailChannel {
	return &EmailChannel{client: client, fromEmail: fromEmail, fromName: fromName, fallback: fallback}
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) IsConfigured() bool { return e.fromEmail != "" }

func (e *EmailChannel) Send(ctx context.Context, msg Message) error {
	to := msg.Recipients
	if len(to) == 0 {
		to = e.fallback
	}
	if len(to) == 0 {
		return nil
	}

	source := e.fromEmail
	if e.fromName != "" {
		source = fmt.Sprintf("%s <%s>", e.fromName, e.fromEmail)
	}

	text, htmlBody := emailBodies(msg)
	input := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: to},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject(msg.Alert)),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(text), Charset: aws.String("UTF-8")},
				Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
			},
		},
	}

	if _, err := e.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func emailBodies(msg Message) (string, string) {
	a := msg.Alert
	var text strings.Builder
	fmt.Fprintf(&text, "%s\n\n%s\n\n", a.Title, a.Description)
	fmt.Fprintf(&text, "Severity: %s\nCategory: %s\nRaised: %s\n", a.Severity, a.Category, a.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	if a.RepositoryID != nil {
		fmt.Fprintf(&text, "Repository: %s\n", *a.RepositoryID)
	}
	if a.ScanID != nil {
		fmt.Fprintf(&text, "Scan: %s\n", *a.ScanID)
	}

	htmlBody := fmt.Sprintf(`<html>
  <body style="font-family: ui-monospace, Menlo, Consolas, monospace; padding: 20px;">
    <h2>%s</h2>
    <p>%s</p>
    <p><strong>Severity:</strong> %s<br><strong>Category:</strong> %s</p>
  </body>
</html>`,
		html.EscapeString(a.Title), html.EscapeString(a.Description),
		html.EscapeString(string(a.Severity)), html.EscapeString(string(a.Category)))

	return text.String(), htmlBody
}
