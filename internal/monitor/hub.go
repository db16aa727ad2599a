// Package monitor streams session lifecycle events to operator
// dashboards over WebSocket. It is read-only: monitor clients never
// influence a robot session.
package monitor

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/robot-guidance/server/internal/events"
)

// Client is one connected dashboard.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Hub tracks monitor clients and fans session events out to them.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
	logger     *zap.Logger
}

// NewHub creates a hub. Run must be started for it to make progress.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		logger:     logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Run processes register/unregister/broadcast requests. Call it in its
// own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Info("Monitor client registered",
				zap.String("client_id", client.ID),
				zap.Int("total_clients", len(h.clients)),
			)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Monitor client unregistered",
				zap.String("client_id", client.ID),
				zap.Int("total_clients", len(h.clients)),
			)
		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.logger.Warn("Monitor client send buffer full",
						zap.String("client_id", client.ID),
					)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues data for every connected client. Slow clients drop
// messages rather than stall the hub.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Monitor broadcast buffer full, dropping event")
	}
}

// Publish implements events.Sink: encode the event and fan it out.
func (h *Hub) Publish(_ context.Context, ev events.Event) {
	data, err := events.Encode(&ev)
	if err != nil {
		h.logger.Error("Failed to encode session event", zap.Error(err))
		return
	}
	h.Broadcast(data)
}
