// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/internal/storage/memory"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func testAlert(orgID string, severity aidebt.AlertSeverity) *aidebt.Alert {
	repo := "repo-1"
	return &aidebt.Alert{
		ID:             "alert-1",
		OrganizationID: orgID,
		RepositoryID:   &repo,
		Severity:       severity,
		Category:       aidebt.CategoryZoneDowngrade,
		Title:          "acme/api moved to <critical>",
		Description:    "Score fell from 72 to 45",
		Status:         aidebt.AlertActive,
		CreatedAt:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

type recordingChannel struct {
	name       string
	configured bool
	err        error
	sent       []Message
}

func (c *recordingChannel) Name() string       { return c.name }
func (c *recordingChannel) IsConfigured() bool { return c.configured }
func (c *recordingChannel) Send(_ context.Context, msg Message) error {
	c.sent = append(c.sent, msg)
	return c.err
}

func TestDispatcher_FansOutWithRecipients(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	org := &storage.Organization{Name: "Acme", Slug: "acme", AlertEmails: []string{"lead@acme.dev"}}
	require.NoError(t, store.Organizations().Create(ctx, org))

	ok := &recordingChannel{name: "ok", configured: true}
	broken := &recordingChannel{name: "broken", configured: true, err: errors.New("down")}
	off := &recordingChannel{name: "off"}
	d := NewDispatcher(store.Organizations(), "", testLogger(), broken, ok, off, nil)

	assert.Equal(t, []string{"broken", "ok"}, d.Channels())

	err := d.Notify(ctx, testAlert(org.ID, aidebt.SeverityHigh))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: down")

	require.Len(t, ok.sent, 1, "a failing channel does not stop the others")
	assert.Equal(t, []string{"lead@acme.dev"}, ok.sent[0].Recipients)
	assert.Empty(t, off.sent)
}

func TestDispatcher_MinSeverity(t *testing.T) {
	ch := &recordingChannel{name: "ok", configured: true}
	d := NewDispatcher(nil, aidebt.SeverityHigh, testLogger(), ch)

	require.NoError(t, d.Notify(context.Background(), testAlert("org-1", aidebt.SeverityMedium)))
	assert.Empty(t, ch.sent)

	require.NoError(t, d.Notify(context.Background(), testAlert("org-1", aidebt.SeverityHigh)))
	assert.Len(t, ch.sent, 1)
}

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	return &ses.SendEmailOutput{}, f.err
}

func TestEmailChannel_Send(t *testing.T) {
	client := &fakeSES{}
	ch := newEmail(client, "alerts@aidebt.dev", "AI Debt", []string{"ops@aidebt.dev"})
	require.True(t, ch.IsConfigured())

	require.NoError(t, ch.Send(context.Background(), Message{Alert: testAlert("org-1", aidebt.SeverityHigh)}))
	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "AI Debt <alerts@aidebt.dev>", aws.ToString(in.Source))
	assert.Equal(t, []string{"ops@aidebt.dev"}, in.Destination.ToAddresses)
	assert.Equal(t, "[AI debt][high] acme/api moved to <critical>", aws.ToString(in.Message.Subject.Data))
	assert.Contains(t, aws.ToString(in.Message.Body.Text.Data), "Repository: repo-1")
	assert.Contains(t, aws.ToString(in.Message.Body.Html.Data), "&lt;critical&gt;")

	require.NoError(t, ch.Send(context.Background(), Message{
		Alert:      testAlert("org-1", aidebt.SeverityHigh),
		Recipients: []string{"lead@acme.dev"},
	}))
	assert.Equal(t, []string{"lead@acme.dev"}, client.inputs[1].Destination.ToAddresses)
}

func TestEmailChannel_NoRecipients(t *testing.T) {
	client := &fakeSES{}
	ch := newEmail(client, "alerts@aidebt.dev", "", nil)

	require.NoError(t, ch.Send(context.Background(), Message{Alert: testAlert("org-1", aidebt.SeverityLow)}))
	assert.Empty(t, client.inputs)
	assert.False(t, newEmail(client, "", "", nil).IsConfigured())
}

func TestEmailChannel_WrapsError(t *testing.T) {
	ch := newEmail(&fakeSES{err: errors.New("throttled")}, "alerts@aidebt.dev", "", []string{"ops@aidebt.dev"})
	err := ch.Send(context.Background(), Message{Alert: testAlert("org-1", aidebt.SeverityLow)})
	assert.ErrorContains(t, err, "failed to send email: throttled")
}

type fakeSNS struct {
	inputs []*sns.PublishInput
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestTopicChannel_Send(t *testing.T) {
	client := &fakeSNS{}
	ch := &TopicChannel{client: client, topicArn: "arn:aws:sns:us-east-1:1:alerts"}
	alert := testAlert("org-1", aidebt.SeverityMedium)
	alert.Title = strings.Repeat("x", 200)

	require.NoError(t, ch.Send(context.Background(), Message{Alert: alert}))
	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Len(t, aws.ToString(in.Subject), 100)
	assert.Equal(t, "medium", aws.ToString(in.MessageAttributes["severity"].StringValue))

	var decoded aidebt.Alert
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(in.Message)), &decoded))
	assert.Equal(t, "alert-1", decoded.ID)
}

type fakePublisher struct {
	channels []string
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, message.([]byte))
	return redis.NewIntResult(1, nil)
}

func TestPubSubChannel_Send(t *testing.T) {
	pub := &fakePublisher{}
	ch := &PubSubChannel{client: pub, prefix: "alerts"}

	require.NoError(t, ch.Send(context.Background(), Message{Alert: testAlert("org-9", aidebt.SeverityHigh)}))
	assert.Equal(t, []string{"alerts:org-9"}, pub.channels)
	assert.Contains(t, string(pub.payloads[0]), `"category":"risk_zone_downgrade"`)

	assert.False(t, NewPubSub(nil, "").IsConfigured())
}
