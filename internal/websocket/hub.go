package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

// Hub fans content events out to every connected admin dashboard.
type Hub struct {
	// Registered clients. An admin may hold several connections, one per tab.
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan *types.Event

	// Closed when Run returns.
	done chan struct{}

	// Protects clients for readers outside the Run loop.
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *types.Event, 64),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			slog.Info("WebSocket client connected", slog.String("email", client.email))

		case client := <-h.unregister:
			h.remove(client)

		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		slog.Info("WebSocket client disconnected", slog.String("email", client.email))
	}
}

// fanOut runs on the hub goroutine only, so it is the single closer of send channels.
func (h *Hub) fanOut(event *types.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to encode event", slog.String("type", string(event.Type)), slog.String("error", err.Error()))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer: drop it rather than block everyone else.
			delete(h.clients, client)
			close(client.send)
			slog.Warn("Dropped slow WebSocket client", slog.String("email", client.email))
		}
	}
}

// RegisterClient adds a client. It returns false once the hub has stopped.
func (h *Hub) RegisterClient(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues event for every client without blocking the caller.
func (h *Hub) Broadcast(event *types.Event) {
	select {
	case h.broadcast <- event:
	default:
		slog.Warn("Broadcast channel is full, dropping event", slog.String("type", string(event.Type)))
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
