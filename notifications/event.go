package notifications

// GroupPrefix is prepended to the username to form a user's private
// notification channel. Deterministic naming means the publisher never has
// to enumerate subscribers.
const GroupPrefix = "notifications_"

// OrderPlacedMessage is pushed to the purchasing user when checkout completes.
const OrderPlacedMessage = "A new order was placed successfully!"

// Event is the wire payload delivered to live connections.
type Event struct {
	Message string `json:"message"`
}

// ChannelForUser derives the private channel name for a username.
func ChannelForUser(username string) string {
	return GroupPrefix + username
}
