// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// PubSubChannel publishes alerts on a per-organization Redis channel so
// connected dashboards can show them without polling.
type PubSubChannel struct {
	client publisher
	prefix string
}

// NewPubSub creates a channel publishing to "<prefix>:<organization id>".
// client may be nil, which leaves the channel unconfigured.
func NewPubSub(client *redis.Client, prefix string) *PubSubChannel {
	if prefix == "" {
		prefix = "alerts"
	}
	ch := &PubSubChannel{prefix: prefix}
	if client != nil {
		ch.client = client
	}
	return ch
}

// ChannelFor returns the Redis channel name for an organization
func (p *PubSubChannel) ChannelFor(orgID string) string {
	return p.prefix + ":" + orgID
}

func (p *PubSubChannel) Name() string { return "redis" }

func (p *PubSubChannel) IsConfigured() bool { return p.client != nil }

func (p *PubSubChannel) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg.Alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}
	if err := p.client.Publish(ctx, p.ChannelFor(msg.Alert.OrganizationID), body).Err(); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	return nil
}
