package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, buffer int) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, buffer),
		UserID: "test-client",
		Role:   "volunteer",
	}
}

func receiveEvent(t *testing.T, client *Client) *Event {
	t.Helper()
	select {
	case raw := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return &event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return nil
	}
}

func TestHubPublishReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	clientA := newTestClient(hub, 8)
	clientB := newTestClient(hub, 8)
	hub.register <- clientA
	hub.register <- clientB

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	// Both get the welcome frame first.
	assert.Equal(t, "welcome", receiveEvent(t, clientA).Type)
	assert.Equal(t, "welcome", receiveEvent(t, clientB).Type)

	hub.Publish("sos-alert", map[string]interface{}{"priority": "high"})

	eventA := receiveEvent(t, clientA)
	eventB := receiveEvent(t, clientB)
	assert.Equal(t, "sos-alert", eventA.Type)
	assert.Equal(t, "sos-alert", eventB.Type)
	assert.NotZero(t, eventA.Timestamp)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Buffer of one fills with the welcome frame; the client never
	// drains it, so the next broadcast cannot be delivered.
	slow := newTestClient(hub, 1)
	hub.register <- slow

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish("crowd-update", map[string]interface{}{"destination": "Tapovan"})

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 8)
	hub.register <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.unregister <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)

	// Drain the welcome frame, then the channel must be closed.
	for {
		if _, ok := <-client.send; !ok {
			return
		}
	}
}

func TestPublishNeverBlocksWithoutClients(t *testing.T) {
	hub := NewHub()
	// Run loop deliberately not started; Publish must still return.
	for i := 0; i < 200; i++ {
		hub.Publish("emergency-notification", map[string]interface{}{"i": i})
	}
}
