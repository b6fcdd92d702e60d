package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"mathdeck/internal/bus"
	"mathdeck/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Local-only server
	},
}

// ChangeHub pushes store-change notifications to connected UI views over
// WebSocket. It subscribes to the notification bus; each message carries
// only the channel name, and views re-query the API for fresh data.
type ChangeHub struct {
	mu      sync.RWMutex
	clients map[*wsClient]bool
	log     *logger.Logger
}

type wsClient struct {
	hub  *ChangeHub
	conn *websocket.Conn
	send chan []byte
}

type changeMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

// NewChangeHub creates an empty ChangeHub.
func NewChangeHub() *ChangeHub {
	return &ChangeHub{
		clients: make(map[*wsClient]bool),
		log:     logger.Default().WithPrefix("ws"),
	}
}

// StoreChanged implements bus.Subscriber.
func (h *ChangeHub) StoreChanged(ch bus.Channel) {
	msg := changeMessage{Type: "store_change", Channel: string(ch)}
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("failed to marshal change message: %v", err)
		return
	}
	h.broadcast(data)
}

func (h *ChangeHub) broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.trySend(client, data)
	}
}

// trySend handles the case where the client's channel was closed between
// snapshot and send.
func (h *ChangeHub) trySend(client *wsClient, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed by removeClient - client already cleaned up
		}
	}()

	select {
	case client.send <- data:
	default:
		// Client buffer full, close it
		h.removeClient(client)
	}
}

func (h *ChangeHub) addClient(client *wsClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

func (h *ChangeHub) removeClient(client *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (h *ChangeHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS handles WebSocket connection requests.
func (h *ChangeHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.addClient(client)
	h.log.Debug("client connected, %d total", h.ClientCount())

	go client.writePump()
	go client.readPump()
}

// readPump reads messages from the connection. We don't expect client
// messages, but we need to read to detect disconnects.
func (c *wsClient) readPump() {
	defer c.hub.removeClient(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
