package notifications

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Broadcaster publishes a message to a named channel. Delivery is
// best-effort: no persistence, no retry, no acknowledgment. Messages
// published while a channel has no subscribers are dropped.
type Broadcaster interface {
	Publish(ctx context.Context, channel, message string) error
}

// RedisBroadcaster fans messages out over Redis pub/sub. Publishing does not
// block on subscriber receipt; Redis delivers to whoever is subscribed at
// that instant, in publish order per channel.
type RedisBroadcaster struct {
	client *redis.Client
}

// NewRedisBroadcaster creates a broadcaster backed by the given Redis client
func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, channel, message string) error {
	payload, err := json.Marshal(Event{Message: message})
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channel, payload).Err()
}
