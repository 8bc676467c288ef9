package notifications_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"shop-service/notifications"
)

func TestDispatch_DeliversToAllChannelSubscribers(t *testing.T) {
	hub := notifications.NewHub(nil, zap.NewNop())

	first := hub.Subscribe("notifications_alice")
	second := hub.Subscribe("notifications_alice")

	hub.Dispatch("notifications_alice", []byte(`{"message":"hi"}`))

	assert.Equal(t, `{"message":"hi"}`, string(<-first.C))
	assert.Equal(t, `{"message":"hi"}`, string(<-second.C))
}

func TestDispatch_ChannelsAreIsolated(t *testing.T) {
	hub := notifications.NewHub(nil, zap.NewNop())

	alice := hub.Subscribe("notifications_alice")
	bob := hub.Subscribe("notifications_bob")

	hub.Dispatch("notifications_alice", []byte("for alice"))

	assert.Len(t, alice.C, 1)
	assert.Len(t, bob.C, 0)
}

func TestDispatch_UnknownChannelIsNoop(t *testing.T) {
	hub := notifications.NewHub(nil, zap.NewNop())

	assert.NotPanics(t, func() {
		hub.Dispatch("notifications_ghost", []byte("nobody listens"))
	})
}

func TestDispatch_DropsWhenSubscriberBufferIsFull(t *testing.T) {
	hub := notifications.NewHub(nil, zap.NewNop())
	sub := hub.Subscribe("notifications_alice")

	for i := 0; i < 100; i++ {
		hub.Dispatch("notifications_alice", []byte(fmt.Sprintf("msg-%d", i)))
	}

	// The buffer caps the backlog; everything past it was dropped, and the
	// surviving payloads are the oldest ones in publish order.
	assert.Equal(t, cap(sub.C), len(sub.C))
	assert.Equal(t, "msg-0", string(<-sub.C))
}

func TestUnsubscribe_RemovesSubscriptionAndClosesChannel(t *testing.T) {
	hub := notifications.NewHub(nil, zap.NewNop())
	sub := hub.Subscribe("notifications_alice")
	assert.Equal(t, 1, hub.SubscriberCount("notifications_alice"))

	hub.Unsubscribe(sub)

	assert.Equal(t, 0, hub.SubscriberCount("notifications_alice"))
	_, open := <-sub.C
	assert.False(t, open)

	hub.Dispatch("notifications_alice", []byte("late"))
}

func TestUnsubscribe_IsIdempotent(t *testing.T) {
	hub := notifications.NewHub(nil, zap.NewNop())
	sub := hub.Subscribe("notifications_alice")

	hub.Unsubscribe(sub)
	assert.NotPanics(t, func() { hub.Unsubscribe(sub) })
}

func TestSubscriberCount_TracksRegistrations(t *testing.T) {
	hub := notifications.NewHub(nil, zap.NewNop())

	subs := make([]*notifications.Subscription, 0, 3)
	for i := 0; i < 3; i++ {
		subs = append(subs, hub.Subscribe("notifications_alice"))
	}
	assert.Equal(t, 3, hub.SubscriberCount("notifications_alice"))

	hub.Unsubscribe(subs[0])
	assert.Equal(t, 2, hub.SubscriberCount("notifications_alice"))
	assert.Equal(t, 0, hub.SubscriberCount("notifications_bob"))
}

func TestChannelForUser_PrependsGroupPrefix(t *testing.T) {
	assert.Equal(t, "notifications_alice", notifications.ChannelForUser("alice"))
}
