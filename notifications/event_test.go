package notifications_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"shop-service/notifications"
)

func TestEvent_WireFormat(t *testing.T) {
	payload, err := json.Marshal(notifications.Event{Message: notifications.OrderPlacedMessage})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"message": "A new order was placed successfully!"}`, string(payload))
}
