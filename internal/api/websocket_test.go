package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mathdeck/internal/bus"
)

func newHubClient(hub *ChangeHub, buffer int) *wsClient {
	return &wsClient{hub: hub, send: make(chan []byte, buffer)}
}

func TestChangeHubAddRemoveClient(t *testing.T) {
	hub := NewChangeHub()
	client := newHubClient(hub, 8)

	hub.addClient(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.removeClient(client)
	assert.Equal(t, 0, hub.ClientCount())

	// The send channel is closed so the write pump exits.
	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed")
	default:
		t.Error("send channel should be closed after removeClient")
	}

	// Removing twice is a no-op.
	hub.removeClient(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestStoreChangedReachesAllClients(t *testing.T) {
	hub := NewChangeHub()
	first := newHubClient(hub, 8)
	second := newHubClient(hub, 8)
	hub.addClient(first)
	hub.addClient(second)

	hub.StoreChanged(bus.DecksChanged)

	for _, client := range []*wsClient{first, second} {
		select {
		case data := <-client.send:
			var msg changeMessage
			require.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, "store_change", msg.Type)
			assert.Equal(t, "decks", msg.Channel)
		case <-time.After(100 * time.Millisecond):
			t.Error("client did not receive the change message")
		}
	}
}

func TestStoreChangedSurvivesClosedClient(t *testing.T) {
	hub := NewChangeHub()
	client := newHubClient(hub, 8)
	hub.addClient(client)
	hub.removeClient(client)

	// The snapshot-then-send race means a send can hit a closed channel;
	// it must not take the hub down.
	hub.StoreChanged(bus.TagsChanged)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewChangeHub()
	client := newHubClient(hub, 1)
	hub.addClient(client)

	hub.StoreChanged(bus.ProblemsChanged)
	require.Equal(t, 1, hub.ClientCount())

	// Buffer is full now; the next broadcast evicts the client instead
	// of blocking the publisher.
	hub.StoreChanged(bus.ProblemsChanged)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestServeWSDeliversBusEvents(t *testing.T) {
	hub := NewChangeHub()
	changeBus := bus.New()
	changeBus.Subscribe(bus.DecksChanged, hub)

	ts := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	waitForClients(t, hub, 1)

	changeBus.Publish(bus.DecksChanged)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg changeMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "store_change", msg.Type)
	assert.Equal(t, "decks", msg.Channel)
}

// waitForClients polls until the hub has registered n clients; the dial
// handshake returns slightly before ServeWS adds the client.
func waitForClients(t *testing.T, hub *ChangeHub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connected clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
