// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// TopicChannel publishes alerts as JSON to an SNS topic. Subscribers can
// filter on the severity and category message attributes.
type TopicChannel struct {
	client   snsAPI
	topicArn string
}

func NewTopic(cfg aws.Config, topicArn string) *TopicChannel {
	return &TopicChannel{client: sns.NewFromConfig(cfg), topicArn: topicArn}
}

func (t *TopicChannel) Name() string { return "sns" }

func (t *TopicChannel) IsConfigured() bool { return t.topicArn != "" }

func (t *TopicChannel) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg.Alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	_, err = t.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(t.topicArn),
		Subject:  aws.String(truncate(subject(msg.Alert), 100)),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"severity": {DataType: aws.String("String"), StringValue: aws.String(string(msg.Alert.Severity))},
			"category": {DataType: aws.String("String"), StringValue: aws.String(string(msg.Alert.Category))},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	return nil
}

// truncate cuts s to n bytes; SNS rejects longer subjects
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
