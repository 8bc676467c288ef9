package notifications

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// subscriptionBuffer bounds the per-connection backlog. A subscriber that
// cannot keep up has messages dropped rather than blocking the fan-out loop.
const subscriptionBuffer = 16

// Subscription is one live connection's registration on a channel. Payloads
// arrive on C in publish order.
type Subscription struct {
	Channel string
	C       chan []byte
}

// Hub owns the mapping from channel name to the set of currently-registered
// subscriptions. Run consumes the Redis pub/sub backend and fans each
// published payload out to the local subscriptions of its channel.
type Hub struct {
	client *redis.Client
	logger *zap.Logger

	mu       sync.Mutex
	channels map[string]map[*Subscription]struct{}
}

// NewHub creates a hub backed by the given Redis client
func NewHub(client *redis.Client, logger *zap.Logger) *Hub {
	return &Hub{
		client:   client,
		logger:   logger,
		channels: make(map[string]map[*Subscription]struct{}),
	}
}

// Run blocks, pattern-subscribing to every notification channel and
// dispatching payloads to registered subscriptions until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	pubsub := h.client.PSubscribe(ctx, GroupPrefix+"*")
	defer pubsub.Close()

	h.logger.Info("Notification hub started", zap.String("pattern", GroupPrefix+"*"))

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				h.logger.Warn("Notification hub pub/sub stream closed")
				return
			}
			h.Dispatch(msg.Channel, []byte(msg.Payload))
		case <-ctx.Done():
			return
		}
	}
}

// Subscribe registers a new subscription on the channel
func (h *Hub) Subscribe(channel string) *Subscription {
	sub := &Subscription{
		Channel: channel,
		C:       make(chan []byte, subscriptionBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.channels[channel] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

// Unsubscribe deregisters the subscription and closes its payload channel.
// Calling it again for an already-removed subscription is a no-op.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.channels[sub.Channel]
	if !ok {
		return
	}
	if _, registered := subs[sub]; !registered {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.channels, sub.Channel)
	}
	close(sub.C)
}

// Dispatch delivers a payload to every subscription currently registered on
// the channel. Sends never block: a full subscriber buffer means the payload
// is dropped for that subscriber.
func (h *Hub) Dispatch(channel string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.channels[channel] {
		select {
		case sub.C <- payload:
		default:
			h.logger.Warn("Dropping notification for slow subscriber",
				zap.String("channel", channel),
			)
		}
	}
}

// SubscriberCount reports how many subscriptions a channel currently has
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels[channel])
}
