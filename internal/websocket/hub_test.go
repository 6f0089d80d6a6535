package websocket

import (
	"testing"
	"time"

	"roomhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, username string) *Client {
	return &Client{
		hub:      hub,
		send:     make(chan []byte, 8),
		username: username,
	}
}

func receiveOrFail(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub(1)
	go hub.Run()
	defer hub.ShutdownHub()

	alice := newTestClient(hub, "alice")
	bob := newTestClient(hub, "bob")
	hub.Register <- alice
	hub.Register <- bob

	assert.Eventually(t, func() bool { return hub.SubscriberCount() == 2 },
		time.Second, 10*time.Millisecond)

	hub.Broadcast <- []byte("hello")
	assert.Equal(t, "hello", string(receiveOrFail(t, alice.send)))
	assert.Equal(t, "hello", string(receiveOrFail(t, bob.send)))

	hub.Unregister <- bob
	assert.Eventually(t, func() bool { return hub.SubscriberCount() == 1 },
		time.Second, 10*time.Millisecond)

	// The departed client's channel is closed; the rest keep receiving.
	hub.Broadcast <- []byte("again")
	assert.Equal(t, "again", string(receiveOrFail(t, alice.send)))
	_, open := <-bob.send
	assert.False(t, open)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(1)
	go hub.Run()
	defer hub.ShutdownHub()

	slow := &Client{hub: hub, send: make(chan []byte), username: "slow"}
	hub.Register <- slow

	assert.Eventually(t, func() bool { return hub.SubscriberCount() == 1 },
		time.Second, 10*time.Millisecond)

	// Nobody reads slow.send, so the broadcast evicts the client.
	hub.Broadcast <- []byte("hello")
	assert.Eventually(t, func() bool { return hub.SubscriberCount() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestManagerReusesHubPerRoom(t *testing.T) {
	m := NewManager()

	first := m.GetHubForRoom(7)
	second := m.GetHubForRoom(7)
	other := m.GetHubForRoom(8)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestManagerPublish(t *testing.T) {
	m := NewManager()

	// No subscribers, no hub: the event is dropped without blocking.
	m.Publish(42, models.Event{Type: models.EventMessageCreated})

	hub := m.GetHubForRoom(7)
	client := newTestClient(hub, "alice")
	hub.Register <- client
	require.Eventually(t, func() bool { return hub.SubscriberCount() == 1 },
		time.Second, 10*time.Millisecond)

	m.Publish(7, models.Event{
		Type:    models.EventMessageCreated,
		Message: &models.Message{Body: "hi"},
	})

	payload := string(receiveOrFail(t, client.send))
	assert.Contains(t, payload, models.EventMessageCreated)
	assert.Contains(t, payload, "hi")
}
